package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reqdoc",
	Short: "Edit, validate and re-serialize compliance checklist documents",
	Long: `Reqdoc works on accessibility/compliance checklist JSON files.
It tolerates legacy field shapes on load and guarantees every requirement
record is schema-conformant on export.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Subcommands log through slog.Default; -v opens the debug level.
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
