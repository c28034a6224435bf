// Package cli holds the orchestration behind the dateq commands: flag
// and config resolution, engine construction, and the one-shot and
// interactive search flows.
package cli

import (
	"github.com/aretw0/dateq/internal/config"
)

// RunOptions contains the configuration shared by the search commands.
type RunOptions struct {
	ConfigPath string
	Debug      bool

	// Search overrides. Zero values defer to the config file, then to
	// the engine defaults.
	Operators string
	Factorial bool
	Deep      bool
	Tolerance float64
	Workers   int
	NoCache   bool

	// Output shaping for one-shot searches.
	Sort   string
	Limit  int
	Format string
	Output string

	// Headless suppresses the banner and markdown rendering.
	Headless bool
}

// loadConfig reads the config file, falling back to defaults when the
// path does not exist. An explicit --config pointing at a broken file
// still fails.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}
