package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tasksync application
var rootCmd = &cobra.Command{
	Use:   "tasksync",
	Short: "Mirrors Notion tasks into Google Calendar events",
	Long: `tasksync keeps a Notion task database synchronized, one way, with a
Google Calendar. Active tasks become events, done-and-stale tasks are
archived and their events retired, and events whose task no longer exists
are removed.

Each invocation runs a single reconciliation pass; schedule it with cron
or a systemd timer.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tasksync version %s\n" .Version}}`)

	// If no subcommand is provided, run the sync command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "sync")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tasksync version %s\n", version)
		},
	}
}
