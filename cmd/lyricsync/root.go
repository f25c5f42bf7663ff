package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// global flags
	source       string
	mprisService string
	audioFile    string
	syncOffset   float64
	hideHeader   bool
	logFile      string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "lyricsync",
	Short: "terminal karaoke-style lyrics highlighter",
	Long: `lyricsync plays a track and highlights its lyrics line by line as the
audio progresses. click a line (or select it and press enter) to jump there.

audio comes from a local file or from a running mpris player.
when run without a subcommand, it starts the interactive viewer.`,
	Version: "1.0.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewer(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "playback source: file or mpris")
	rootCmd.PersistentFlags().StringVarP(&mprisService, "mpris-service", "m", "", "mpris service name (e.g., org.mpris.MediaPlayer2.spotify)")
	rootCmd.PersistentFlags().StringVar(&audioFile, "audio-file", "", "audio file to play when the source is file")
	rootCmd.PersistentFlags().Float64VarP(&syncOffset, "sync-offset", "s", 0, "initial sync offset in seconds")
	rootCmd.PersistentFlags().BoolVarP(&hideHeader, "hide-header", "H", false, "hide header section")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
