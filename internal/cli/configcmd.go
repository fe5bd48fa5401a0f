package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/drift-backend-go/internal/config"
)

func newConfigCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit configuration",
	}

	cmd.AddCommand(
		newConfigListCommand(st),
		newConfigGetCommand(st),
		newConfigSetCommand(st),
		newConfigPathCommand(),
	)

	return cmd
}

func newConfigListCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration keys and their current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.AvailableKeys() {
				value, _ := st.cfg.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			}
			return nil
		},
	}
}

func newConfigGetCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := st.cfg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown config key: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value and write the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := st.cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
