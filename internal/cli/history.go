package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/models"
	"github.com/driftlab/drift-backend-go/internal/service"
)

func newHistoryCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved generations",
	}

	cmd.AddCommand(
		newHistoryListCommand(st),
		newHistoryShowCommand(st),
		newHistoryDeleteCommand(st),
		newHistoryClearCommand(st),
		newHistoryFavoriteCommand(st),
	)

	return cmd
}

func newHistoryListCommand(st *state) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved generations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, db, err := openHistory(st)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := service.NewHistoryService(repo, st.logger).List(limit, 0)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved generations.")
				return nil
			}

			for _, entry := range entries {
				printHistoryLine(cmd, entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	return cmd
}

func printHistoryLine(cmd *cobra.Command, entry *models.HistoryEntry) {
	req := entry.Response.Request
	label := entry.Name
	if label == "" {
		label = entry.Response.ID
	}
	star := " "
	if entry.Favorite {
		star = "*"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  (%.4f, %.4f) r=%.0fm %s\n",
		star, entry.CreatedAt.Format("2006-01-02 15:04"), label,
		req.Lat, req.Lng, req.Radius, req.Mode)
}

func newHistoryShowCommand(st *state) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, db, err := openHistory(st)
			if err != nil {
				return err
			}
			defer db.Close()

			entry, err := service.NewHistoryService(repo, st.logger).Get(args[0])
			if err != nil {
				return err
			}

			if formatName == "json" {
				out, err := json.MarshalIndent(entry, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			gen := service.NewGenerationService(st.cfg, nil, st.logger)
			out, err := gen.FormatResponse(&entry.Response, formatName, analysis.Attractor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "output format (text, json, gpx, url)")
	return cmd
}

func newHistoryDeleteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, db, err := openHistory(st)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := service.NewHistoryService(repo, st.logger).Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newHistoryClearCommand(st *state) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("pass --force to delete all saved generations")
			}

			repo, db, err := openHistory(st)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := service.NewHistoryService(repo, st.logger).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deletion")
	return cmd
}

func newHistoryFavoriteCommand(st *state) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a saved generation as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, db, err := openHistory(st)
			if err != nil {
				return err
			}
			defer db.Close()

			favorite := !unset
			update := models.HistoryUpdate{Favorite: &favorite}
			if err := service.NewHistoryService(repo, st.logger).Update(args[0], update); err != nil {
				return err
			}

			if favorite {
				fmt.Fprintf(cmd.OutOrStdout(), "Favorited %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unfavorited %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "remove the favorite mark")
	return cmd
}
