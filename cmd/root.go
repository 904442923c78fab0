package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"crosscut/timeline"

	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var rootCmd = &cobra.Command{
	Use:   "crosscut",
	Short: "Inspect and play back multi-track FCPXML timelines",
	Long: `Crosscut loads the lanes of an FCPXML sequence as parallel tracks, builds
a region index over every clip's active window, and answers which clips are
active at any instant. It can print the index, query it, and render the
timeline to a PNG frame sequence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		timeline.SetLogger(logger)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log index builds and frame loop timings")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(demoCmd)
}
