package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"forcegen/internal/config"
	"forcegen/internal/emit"
	"forcegen/internal/report"
)

var (
	outputPath string
	reportPath string
	forceTTY   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the force workaround test script",
	Long: `Generate the bats test script covering every non-skipped scenario in
the profile catalog. The script goes to stdout unless -o is given.

Example:
  forcegen generate -o force-auto.bats --report force-auto.json`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the script to this file instead of stdout")
	generateCmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON generation summary to this file")
	generateCmd.Flags().BoolVar(&forceTTY, "force-tty", false, "Allow writing the script to an interactive terminal")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Load(profilesPath, outputPath, reportPath)

	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	// Emit into memory first: a configuration defect anywhere must
	// leave no partial artifact behind.
	var buf bytes.Buffer
	stats, err := emit.New().Write(&buf, reg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if cfg.OutputPath == "" {
		if !forceTTY && term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write the script to a terminal; use -o, redirect, or pass --force-tty")
		}
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(cfg.OutputPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing script: %w", err)
		}
	}

	if cfg.ReportPath != "" {
		summary := report.Summary{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Profiles:    stats.Profiles,
			Scenarios:   stats.Scenarios,
			Emitted:     stats.Emitted,
			Skipped:     stats.Skipped,
			SkipReasons: stats.ByReason,
			OutputBytes: buf.Len(),
		}
		if err := report.Write(cfg.ReportPath, summary); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "forcegen: %d profiles, %d scenarios, %d tests emitted, %d skipped\n",
		stats.Profiles, stats.Scenarios, stats.Emitted, stats.Skipped)
	return nil
}
