// Package cmd implements the taskboard CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yesaroun/taskboard/pkg/logging"
)

// Version information set by main.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Community board API server",
	Long: `Taskboard is a community board HTTP API with user accounts, posts,
comments, likes, per-user view counting, and image attachments.

Configuration is read from environment variables and an optional .env
file next to the binary. SECRET_KEY must be set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "taskboard %s (commit %s, built %s)\n", Version, Commit, Date)
	},
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
