package cli

import (
	"github.com/spf13/cobra"

	"forcegen/internal/profile"
)

var profilesPath string

var rootCmd = &cobra.Command{
	Use:   "forcegen",
	Short: "forcegen - derive and generate --force workaround tests",
	Long: `forcegen enumerates every combination of target-environment profile,
need category, force flag, and pre-preparation flag, derives the
expected outcome of each from the build tool's documented behavior,
and renders the result as one executable bats script.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "", "Path to profile definition YAML (default: compiled-in catalog)")
}

func loadRegistry() (*profile.Registry, error) {
	if profilesPath != "" {
		return profile.Load(profilesPath)
	}
	return profile.Builtin()
}

func Execute() error {
	return rootCmd.Execute()
}
