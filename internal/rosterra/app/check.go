package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
)

// Check prints the account table to w. On an empty table the default admin
// is seeded instead.
func Check(ctx context.Context, db store.Store, seed *service.SeedService, w io.Writer) error {
	accounts := &service.AccountService{Store: db}

	list, err := accounts.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	fmt.Fprintf(w, "Total accounts: %d\n", len(list))

	if len(list) == 0 {
		created, err := seed.SeedDefaultAdmin(ctx)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(w, "No accounts found. Created default admin %s\n", seed.Email)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tROLE\tSTATUS\tCREATED")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.Email, a.Role, a.Status, a.CreatedAt.Format("2006-01-02"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts, err := accounts.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	fmt.Fprintf(w, "\nApproved: %d\nPending: %d\nRejected: %d\n",
		counts.Approved, counts.Pending, counts.Rejected)
	return nil
}
