package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/lyrics"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "lyric table utilities",
}

var lyricsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the built-in lyric table",
	Long:  `print every lyric line with its start time, in the order the viewer highlights them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLyrics(os.Stdout, lyrics.Builtin())
	},
}

func init() {
	rootCmd.AddCommand(lyricsCmd)
	lyricsCmd.AddCommand(lyricsShowCmd)
}

func printLyrics(w io.Writer, set *lyrics.Set) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tTIME\tTEXT")
	for i, entry := range set.Entries() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, colors.FormatTime(entry.Time), entry.Text)
	}

	return tw.Flush()
}
