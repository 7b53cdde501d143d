// Package cmd implements the command-line interface for ytgrab.
package cmd

import (
	"context"
	"fmt"

	"github.com/DowranRowshenow/youtube-downloader/color"
	"github.com/DowranRowshenow/youtube-downloader/inline"
	"github.com/DowranRowshenow/youtube-downloader/network"
	"github.com/DowranRowshenow/youtube-downloader/provider"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/style"
	"github.com/DowranRowshenow/youtube-downloader/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatsCmd)

	formatsCmd.Flags().BoolP("json", "j", false, "Dump the full stream catalog as JSON")
}

// createSource probes the local proxy and builds the default extraction backend.
func createSource() source.Source {
	proxy := network.DetectProxy(context.Background())
	src, err := provider.Default().CreateSource(proxy)
	handleErr(err)
	return src
}

// formatsCmd displays the ranked stream listing for a video without downloading anything.
var formatsCmd = &cobra.Command{
	Use:   "formats [url]",
	Short: "Display the available stream variants for a video",
	Long:  `Fetch and display the deduplicated, best-first stream listing: video qualities, audio languages, and subtitle tracks.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := createSource()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(inline.Run(&inline.Options{
				Source: src,
				URL:    args[0],
				Json:   true,
			}))
			return
		}

		ref, err := source.Normalize(args[0])
		handleErr(err)

		catalog, err := src.Streams(context.Background(), ref)
		handleErr(err)

		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render

		fmt.Println(style.Title(catalog.Title))
		fmt.Println(style.Faint(util.Quantify(len(catalog.Streams), "stream advertised", "streams advertised")))
		fmt.Println()

		fmt.Println(headerStyle("Video:"))
		for i, s := range catalog.RankedVideos() {
			fmt.Printf("%s %s\n", style.Faint(fmt.Sprintf("%2d.", i+1)), s)
		}

		if audios := catalog.AudioLanguages(); len(audios) > 0 {
			fmt.Println()
			fmt.Println(headerStyle("Audio:"))
			for _, s := range audios {
				line := s.String()
				if s.DefaultLanguage {
					line += " " + style.Fg(color.Green)("(default)")
				}
				fmt.Printf("    %s\n", line)
			}
		}

		if subs := catalog.Subtitles(); len(subs) > 0 {
			fmt.Println()
			fmt.Println(headerStyle("Subtitles:"))
			for _, s := range subs {
				fmt.Printf("    %s\n", s)
			}
		}
	},
}
