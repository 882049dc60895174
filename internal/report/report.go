package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Summary records what one generation run produced. It is written as a
// single JSON document so CI can diff catalog changes against scenario
// counts.
type Summary struct {
	GeneratedAt string         `json:"generated_at"`
	Profiles    int            `json:"profiles"`
	Scenarios   int            `json:"scenarios"`
	Emitted     int            `json:"emitted"`
	Skipped     int            `json:"skipped"`
	SkipReasons map[string]int `json:"skip_reasons,omitempty"`
	OutputBytes int            `json:"output_bytes"`
}

// Write stores the summary at path, replacing any previous run's
// report.
func Write(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
