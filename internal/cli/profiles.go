package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"forcegen/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the effective profile catalog",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tCONFIG\tSCOPE\tCATEGORIES\tPREP\tHOOK")
	for _, p := range reg.Profiles() {
		var cats []string
		for _, cat := range profile.Categories {
			if _, ok := p.Runs[cat]; ok {
				cats = append(cats, string(cat))
			}
		}
		prep := "-"
		if p.Prep != "" {
			prep = "yes"
		}
		hook := "-"
		if p.Hook != nil {
			hook = p.Hook.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Base, p.Config, p.Scope, strings.Join(cats, ","), prep, hook)
	}
	return w.Flush()
}
