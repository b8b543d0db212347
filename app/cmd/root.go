package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/app"
	"github.com/marketconnect/cursor-stats/app/internal/config"
	"github.com/marketconnect/cursor-stats/app/internal/logger"
)

var helpEnv bool

var rootCmd = &cobra.Command{
	Use:   "cursor-stats [action]",
	Short: "Cursor usage statistics for Alfred",
	Long: `cursor-stats reads the Cursor session from the local IDE state, fetches
premium request, spend and billing cycle usage, and prints Alfred script
filter items as JSON.

Actions: refresh, open_cursor_settings, premium_requests,
usage_based_pricing, account_info.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if helpEnv {
			return printEnvHelp(cmd.OutOrStdout())
		}
		// Only the first argument selects the action; the rest are ignored.
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		return run(cmd.Context(), query, cmd.OutOrStdout())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&helpEnv, "help-env", false, "describe the environment variables and exit")
}

func run(ctx context.Context, query string, w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewOrNop(cfg.DataPath(logger.FileName), cfg.LogLevel)
	cfg.LoadSettings(log)

	a, err := app.NewApp(logger.ContextWithLogger(ctx, log), cfg)
	if err != nil {
		log.Error("failed to create application", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("error closing application", zap.Error(err))
		}
	}()

	return a.Run(ctx, query, w)
}

func printEnvHelp(w io.Writer) error {
	help, err := config.Description()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, help)
	return err
}
