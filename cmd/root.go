package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ygo-pipelines/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	jsonLogs  bool
	debugLogs bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ygo-pipelines",
	Short: "Yu-Gi-Oh! card data pipelines",
	Long: `ygo-pipelines keeps a Postgres card database and an S3 image bucket in
sync with the public YGOPRODeck catalog. Every sync is idempotent and can be
re-run at any time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// The first signal cancels the running sync; in-flight writes still finish.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Use the application's standard logger for error reporting
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}
		if jsonLogs {
			cfg.Format = "json"
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs and summaries as JSON")
	RootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
}
