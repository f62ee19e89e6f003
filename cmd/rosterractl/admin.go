package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rosterra/internal/client/poller"
	"github.com/spf13/cobra"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Account administration (admin role required)",
	}

	var pendingOnly bool
	users := &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := c.sync.ListUsers
			if pendingOnly {
				list = c.sync.ListPendingUsers
			}
			accounts, err := list(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), accounts)
		},
	}
	users.Flags().BoolVar(&pendingOnly, "pending", false, "only accounts awaiting approval")

	cmd.AddCommand(users,
		&cobra.Command{
			Use:   "approve ID",
			Short: "Approve an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := c.sync.ApproveUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, resp.User.Email)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reject ID",
			Short: "Reject an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := c.sync.RejectUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, resp.User.Email)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := c.sync.DeleteUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				return nil
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Print a line whenever new accounts await approval (Ctrl-C stops)",
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				p := &poller.Poller{
					Interval: c.pollInterval,
					Count:    c.sync.CountPendingUsers,
					OnBaseline: func(n int) {
						if n > 0 {
							fmt.Fprintf(out, "%d account(s) awaiting approval\n", n)
						}
					},
					OnIncrease: func(prev, cur int) {
						fmt.Fprintf(out, "%d new signup(s), %d awaiting approval\n", cur-prev, cur)
					},
				}

				fmt.Fprintf(out, "Watching pending accounts every %s\n", p.Interval)
				err := p.Run(cmd.Context())
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			},
		},
	)
	return cmd
}
