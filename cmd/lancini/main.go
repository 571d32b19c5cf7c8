package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aitorres/lancini/internal/config"
	"github.com/aitorres/lancini/internal/logging"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg  *config.Config
	logs *logging.Factory
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lancini",
	Short: "Exhaustive palindrome phrase generator",
	Long: `lancini enumerates every string up to a maximum length over a fixed
alphabet, keeps the palindromes that split into dictionary words, and
appends them to a store it can resume from.

It also runs the zaloma search: triples of six-letter words whose letter
pairs line up under rotation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logs != nil {
			_ = logs.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(zalomaCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the config and builds the loggers for this run.
func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	factory, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	logs = factory.With(zap.String("run_id", uuid.NewString()))

	logs.Get(logging.CategoryBoot).Debug("Configuration loaded",
		zap.String("config", configPath),
		zap.String("store", cfg.Store.Path),
		zap.String("backend", cfg.Store.Backend))
	return nil
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitFailure
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil && code != exitInterrupted {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	if code == exitOK && ctx.Err() != nil {
		code = exitInterrupted
	}

	stop()
	os.Exit(code)
}
