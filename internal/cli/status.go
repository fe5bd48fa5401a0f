package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/drift-backend-go/internal/entropy"
	"github.com/driftlab/drift-backend-go/internal/rng"
	"github.com/driftlab/drift-backend-go/internal/service"
)

func newStatusCommand(st *state) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a random backend and test its output quality",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := service.NewGenerationService(st.cfg, nil, st.logger)
			status := gen.CheckBackend(backend)

			fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s\n", status.Backend)
			if !status.Available {
				fmt.Fprintf(cmd.OutOrStdout(), "Status:  unavailable (%s)\n", status.Error)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Status:  available")
			e := status.Entropy
			fmt.Fprintf(cmd.OutOrStdout(), "Entropy tests over %d bytes:\n", e.BytesAnalyzed)
			fmt.Fprintf(cmd.OutOrStdout(), "  balanced:  %s\n", passFail(e.Balanced))
			fmt.Fprintf(cmd.OutOrStdout(), "  uniform:   %s\n", passFail(e.Uniform))
			fmt.Fprintf(cmd.OutOrStdout(), "  scattered: %s\n", passFail(e.Scattered))
			fmt.Fprintf(cmd.OutOrStdout(), "  overall:   %s\n", passFail(e.Overall))

			fmt.Fprintln(cmd.OutOrStdout(), "\nAvailable backends:")
			for _, info := range rng.Available() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", "", "backend to check (default from config)")
	return cmd
}

func passFail(p float64) string {
	if p >= entropy.PassThreshold {
		return fmt.Sprintf("pass (p=%.3f)", p)
	}
	return fmt.Sprintf("FAIL (p=%.3f)", p)
}
