package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/spf13/cobra"
)

// roasterFlags binds one flag per roster field. Only flags the user set end
// up in the input.
type roasterFlags struct {
	strings   map[string]*string
	followers string
	age       string
	status    string
}

var stringFields = []string{
	"name", "profile-link", "platform", "followers-display", "state", "category",
	"commercials", "phone", "sex", "email", "response",
}

func bindRoasterFlags(cmd *cobra.Command) *roasterFlags {
	f := &roasterFlags{strings: map[string]*string{}}
	for _, name := range stringFields {
		f.strings[name] = cmd.Flags().String(name, "", name)
	}
	cmd.Flags().StringVar(&f.followers, "followers", "", "follower count")
	cmd.Flags().StringVar(&f.age, "age", "", "age (empty clears it)")
	cmd.Flags().StringVar(&f.status, "status", "", "pending, accepted or rejected")
	return f
}

func (f *roasterFlags) input(cmd *cobra.Command) (rostersdk.RoasterInput, error) {
	var in rostersdk.RoasterInput

	set := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return rostersdk.String(*f.strings[name])
	}
	in.Name = set("name")
	in.ProfileLink = set("profile-link")
	in.Platform = set("platform")
	in.FollowersDisplay = set("followers-display")
	in.State = set("state")
	in.Category = set("category")
	in.Commercials = set("commercials")
	in.PhoneNumber = set("phone")
	in.Sex = set("sex")
	in.Email = set("email")
	in.Response = set("response")

	if cmd.Flags().Changed("status") {
		in.Status = rostersdk.String(f.status)
	}

	for flag, dst := range map[string]*rostersdk.FlexInt{"followers": &in.Followers, "age": &in.Age} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		raw, _ := json.Marshal(cmd.Flag(flag).Value.String())
		if err := dst.UnmarshalJSON(raw); err != nil {
			return in, fmt.Errorf("--%s: %w", flag, err)
		}
	}
	return in, nil
}

// readInputs decodes a JSON array of roster entries from path ("-" is stdin).
func readInputs(stdin io.Reader, path string) ([]rostersdk.RoasterInput, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var items []rostersdk.RoasterInput
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

func printRoasters(w io.Writer, list []rostersdk.Roaster) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPLATFORM\tFOLLOWERS\tSTATUS\tLOCAL")
	for _, r := range list {
		local := ""
		if r.LocalOnly {
			local = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Platform, r.Followers, r.Status, local)
	}
	return tw.Flush()
}

func printUsers(w io.Writer, list []rostersdk.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tCREATED")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.Role, u.Status, u.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
