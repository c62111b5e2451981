package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/transposer/internal/config"
	"github.com/aretw0/transposer/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "transposer",
	Short: "Transposer re-spells Roman-numeral analyses into other keys",
	Long: `Transposer rewrites the parenthesized note annotations of Roman-numeral
harmonic analyses, e.g. "I (B) V", so they read correctly in another key.
Everything outside the annotations is left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: 'text' or 'json' (default from config)")
}

// loadSettings reads the config file and builds the logger, applying the persistent flags on top.
func loadSettings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}

	logger := logging.NewWithFormat(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
