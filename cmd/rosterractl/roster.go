package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Work with the shared roster (saved locally when offline)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List roster profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.sync.ListRoasters(cmd.Context())
			if err != nil {
				return err
			}
			return printRoasters(cmd.OutOrStdout(), list)
		},
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Add one roster profile",
	}
	addFlags := bindRoasterFlags(add)
	add.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := addFlags.input(cmd)
		if err != nil {
			return err
		}
		res, err := c.sync.CreateRoaster(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", res.Notice, res.Roaster.ID)
		return nil
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a roster profile",
		Args:  cobra.ExactArgs(1),
	}
	updateFlags := bindRoasterFlags(update)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := updateFlags.input(cmd)
		if err != nil {
			return err
		}
		res, err := c.sync.UpdateRoaster(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Notice)
		return nil
	}

	cmd.AddCommand(add, update,
		&cobra.Command{
			Use:   "import FILE",
			Short: "Create profiles from a JSON array (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := readInputs(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				res, err := c.sync.CreateRoastersBulk(cmd.Context(), items)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if res.Notice != "" {
					fmt.Fprintln(out, res.Notice)
				}
				fmt.Fprintf(out, "Created %d, failed %d\n", len(res.Created), len(res.Failed))
				for _, f := range res.Failed {
					fmt.Fprintf(out, "  entry %d: %s\n", f.Index, f.Error)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a roster profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := c.sync.DeleteRoaster(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Notice)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every roster profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				n, notice, err := c.sync.ClearRoasters(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\nDeleted %d server records\n", notice, n)
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Local working profiles, never sent to the server",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List local profiles",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := c.sync.ListProfiles(cmd.Context())
				if err != nil {
					return err
				}
				return printRoasters(cmd.OutOrStdout(), list)
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Add local profiles from a JSON array (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := readInputs(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				added, err := c.sync.AddProfiles(cmd.Context(), items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d profiles\n", len(added))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID...",
			Short: "Delete local profiles",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := c.sync.DeleteProfiles(cmd.Context(), args...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d profiles\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every local profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.sync.ClearProfiles(cmd.Context())
			},
		},
	)

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a local profile",
		Args:  cobra.ExactArgs(1),
	}
	updateFlags := bindRoasterFlags(update)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := updateFlags.input(cmd)
		if err != nil {
			return err
		}
		_, err = c.sync.UpdateProfile(cmd.Context(), args[0], in)
		return err
	}
	cmd.AddCommand(update)

	return cmd
}
