package cmd

import (
	"fmt"
	"os"

	"inventory-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "inventory-sync",
	Short: "Vendor stock reconciliation",
	Long: `inventory-sync reconciles stock quantities published by a vendor feed
with inventory levels held in the commerce platform, applying only the
deltas needed to make the platform match the feed. Safe to re-run at any
time: every write is an absolute level set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console-only fallback for failures that happen before the run's
		// configured logger exists (config load, validation). Failures inside
		// a run are already written to the run log by the command itself.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
