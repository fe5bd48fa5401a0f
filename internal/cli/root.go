// Package cli implements the drift command-line interface
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/config"
	"github.com/driftlab/drift-backend-go/internal/logging"
)

// Build-time variables injected via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// state carries dependencies initialized once before any subcommand runs
type state struct {
	cfg    *config.Config
	logger *zap.Logger

	configPath string
	logLevel   string
}

// NewRootCommand creates the root command with all subcommands attached
func NewRootCommand() *cobra.Command {
	st := &state{}

	cmd := &cobra.Command{
		Use:     "drift",
		Short:   "Statistically notable random location generator",
		Long:    "drift samples uniformly random points inside a search circle,\nanalyzes their spatial density, and reports statistically notable\nlocations: attractors, voids, and power spots.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&st.configPath, "config", "c", "", "config file path (default: ~/.config/drift/config.toml)")
	pf.StringVar(&st.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newGenerateCommand(st),
		newServeCommand(st),
		newHistoryCommand(st),
		newConfigCommand(st),
		newStatusCommand(st),
	)

	return cmd
}

func (st *state) init() error {
	var cfg *config.Config
	var err error

	if st.configPath != "" {
		cfg, err = config.LoadFrom(st.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	st.cfg = cfg

	level := st.logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	if level == "" {
		// CLI runs stay quiet unless asked; the result goes to stdout
		st.logger = logging.NewQuiet()
		return nil
	}

	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	st.logger = logger
	return nil
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}
