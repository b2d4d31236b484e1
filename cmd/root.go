package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"achievement-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "achievement-manager",
	Short: "Achievement set manager",
	Long: `Achievement Manager keeps the local achievement file of an emulator in sync
with a YAML definition, on top of the achievements already published on the server.

Commands read the emulator directory from RACACHE. It must be the absolute path
of the directory that contains RACache. A local .env file is read as well.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs RootCmd. Interrupts cancel the command context, so a running
// fetch stops early.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Console format with ISO8601 timestamps, regardless of the configured log format
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
