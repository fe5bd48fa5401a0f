package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/api"
	"github.com/driftlab/drift-backend-go/internal/logging"
	"github.com/driftlab/drift-backend-go/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(st *state) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if host != "" {
				st.cfg.Server.Host = host
			}
			if port != 0 {
				st.cfg.Server.Port = port
			}
			return runServe(st)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}

func runServe(st *state) error {
	// The server always logs, even when the CLI default is quiet
	logger, err := logging.New(firstNonEmpty(st.cfg.Log.Level, "info"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	repo, db, err := openHistory(st)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	generation := service.NewGenerationService(st.cfg, repo, logger)
	history := service.NewHistoryService(repo, logger)
	location := service.NewLocationService(logger)

	router := api.SetupRouter(st.cfg, generation, history, location, logger)

	srv := &http.Server{
		Addr:    st.cfg.ServerAddr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
