package main

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/spf13/cobra"
)

func (c *cli) signupCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (needs admin approval before login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
			if err != nil {
				return err
			}

			resp, err := c.sync.Signup(cmd.Context(), rostersdk.SignupRequest{
				Name: name, Email: email, Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token in the local mirror",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
			if err != nil {
				return err
			}

			user, err := c.sync.Login(cmd.Context(), email, password)
			var apiErr *rostersdk.APIError
			if errors.As(err, &apiErr) && apiErr.AccountStatus != "" {
				return errors.New(apiErr.Message)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.sync.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored token and show the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.sync.Verify(cmd.Context())
			if rostersdk.IsUnavailable(err) {
				cached, cerr := c.sync.CurrentAccount(cmd.Context())
				if cerr == nil && cached != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s (cached, server unavailable)\n", cached.Name, cached.Email, cached.Role)
					return nil
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}
