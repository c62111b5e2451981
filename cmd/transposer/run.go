package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/transposer"
	"github.com/aretw0/transposer/internal/adapters/file"
	"github.com/aretw0/transposer/internal/config"
	"github.com/aretw0/transposer/pkg/adapters/memory"
	"github.com/aretw0/transposer/pkg/adapters/redis"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/aretw0/transposer/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <piece>...",
	Short: "Transpose pieces into every destination key",
	Long: `Reads <input>/<piece>.txt, then transposes it into every key folder of the
output directory whose mode matches the piece ("c_maj", "bflat_maj", "fsharp_min"),
writing <output>/<folder>/<piece>.txt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		applyRunFlags(cmd, &cfg)

		sinkKind, _ := cmd.Flags().GetString("sink")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		allKeys, _ := cmd.Flags().GetBool("all-keys")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sink, locker, closeSink, err := buildSink(sinkKind, cfg)
		if err != nil {
			return err
		}
		defer closeSink()

		var enum ports.DestinationEnumerator = file.NewEnumerator(cfg.OutputDir, logger)
		if allKeys {
			enum = memory.NewEnumerator()
		}

		runnerOpts := []runner.Option{
			runner.WithWorkers(cfg.Workers),
			runner.WithFailFast(cfg.FailFast),
			runner.WithDryRun(dryRun),
		}
		if locker != nil {
			runnerOpts = append(runnerOpts, runner.WithLocker(locker, cfg.Redis.LockTTL))
		}

		engine, err := transposer.New(
			transposer.WithSource(file.NewSource(cfg.InputDir)),
			transposer.WithEnumerator(enum),
			transposer.WithSink(sink),
			transposer.WithLogger(logger),
			transposer.WithRunnerOptions(runnerOpts...),
		)
		if err != nil {
			return err
		}

		failed := 0
		for _, piece := range args {
			report, err := engine.Run(ctx, piece)
			if err != nil {
				return fmt.Errorf("piece %s: %w", piece, err)
			}
			failed += len(report.Failures)
			printReport(cmd.OutOrStdout(), report, sinkKind == "stdout" && !dryRun, logger)
		}

		if failed > 0 {
			return fmt.Errorf("%d destination(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Directory holding <piece>.txt analyses (default from config)")
	runCmd.Flags().StringP("output", "o", "", "Directory holding one folder per destination key (default from config)")
	runCmd.Flags().String("sink", "file", "Where results go: 'file', 'redis' or 'stdout'")
	runCmd.Flags().Bool("dry-run", false, "Transpose without writing results")
	runCmd.Flags().Bool("fail-fast", false, "Stop at the first destination that fails")
	runCmd.Flags().IntP("workers", "w", 0, "Destinations transposed concurrently (default from config)")
	runCmd.Flags().Bool("all-keys", false, "Transpose into every conventional key instead of the output folders")
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("input") {
		cfg.InputDir, _ = cmd.Flags().GetString("input")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("fail-fast") {
		cfg.FailFast, _ = cmd.Flags().GetBool("fail-fast")
	}
}

// buildSink returns the configured sink, the locker that guards it (if any) and a close function.
func buildSink(kind string, cfg config.Config) (ports.Sink, ports.DistributedLocker, func(), error) {
	switch kind {
	case "file":
		return file.NewSink(cfg.OutputDir), nil, func() {}, nil
	case "stdout":
		return memory.NewSink(), nil, func() {}, nil
	case "redis":
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		locker := redis.NewLocker(rs.Client(), "transposer:")
		return rs, locker, func() {
			if err := rs.Close(); err != nil {
				slog.Warn("Failed to close redis sink", "err", err)
			}
		}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown sink %q (supported: file, redis, stdout)", kind)
}

func printReport(w io.Writer, report *runner.Report, withText bool, logger *slog.Logger) {
	if withText {
		for _, res := range report.Results {
			fmt.Fprintf(w, "=== %s (%s) ===\n%s\n", res.Destination.Name, res.Destination.Key, res.Text)
		}
	}
	for _, f := range report.Failures {
		logger.Error("Destination failed", "piece", report.Piece, "destination", f.Destination.Name, "err", f.Err)
	}
	if report.Truncated {
		fmt.Fprintf(w, "%s: warning: unmatched '(' at offset %d, later annotations were not transposed\n", report.Piece, report.UnmatchedAt)
	}
	fmt.Fprintf(w, "%s (%s): %d annotation(s), %d key(s) transposed, %d failed\n",
		report.Piece, report.Original, report.Annotations, len(report.Results), len(report.Failures))
}
