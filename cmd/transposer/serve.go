package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/transposer"
	"github.com/aretw0/transposer/internal/adapters/file"
	"github.com/aretw0/transposer/internal/metrics"
	"github.com/aretw0/transposer/internal/presentation/tui"
	httpAdapter "github.com/aretw0/transposer/pkg/adapters/http"
	"github.com/aretw0/transposer/pkg/adapters/memory"
	"github.com/aretw0/transposer/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the transposer as a JSON API over HTTP. Pieces are read from the input
directory and results are kept in memory, or in Redis with --sink redis.
Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		applyRunFlags(cmd, &cfg)
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		sinkKind, _ := cmd.Flags().GetString("sink")
		if sinkKind == "stdout" {
			return fmt.Errorf("sink %q is not supported by serve", sinkKind)
		}

		sink, locker, closeSink, err := buildSink(sinkKind, cfg)
		if err != nil {
			return err
		}
		defer closeSink()

		m := metrics.New()
		runnerOpts := []runner.Option{
			runner.WithWorkers(cfg.Workers),
			runner.WithLifecycleHooks(m.Hooks()),
		}
		if locker != nil {
			runnerOpts = append(runnerOpts, runner.WithLocker(locker, cfg.Redis.LockTTL))
		}

		engine, err := transposer.New(
			transposer.WithSource(file.NewSource(cfg.InputDir)),
			transposer.WithEnumerator(memory.NewEnumerator()),
			transposer.WithSink(sink),
			transposer.WithLogger(logger),
			transposer.WithRunnerOptions(runnerOpts...),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: httpAdapter.NewHandler(
				httpAdapter.WithEngine(engine),
				httpAdapter.WithSink(sink),
				httpAdapter.WithMetrics(m),
				httpAdapter.WithLogger(logger),
			),
		}

		if isTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting transposer server", "addr", srv.Addr, "input", cfg.InputDir, "sink", sinkKind)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Shutdown signal received")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Transposer server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config)")
	serveCmd.Flags().StringP("input", "i", "", "Directory holding <piece>.txt analyses (default from config)")
	serveCmd.Flags().StringP("output", "o", "", "Directory results are written to with --sink file (default from config)")
	serveCmd.Flags().String("sink", "file", "Where run results go: 'file' or 'redis'")
	serveCmd.Flags().IntP("workers", "w", 0, "Destinations transposed concurrently (default from config)")
}
