package cmd

import (
	"fmt"
	"os"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "plugin-cost",
	Short: "NHMzh Cost Plugin",
	Long: `Cost plugin for the NHMzh BIM pipeline.
It maps cost estimates onto model elements via eBKP classification codes
and serves the mapped trees over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format with debug level gives readable ISO8601 timestamps
		// for a CLI tool.
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
