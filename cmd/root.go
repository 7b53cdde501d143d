// Package cmd implements the command-line interface for ytgrab.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/DowranRowshenow/youtube-downloader/color"
	"github.com/DowranRowshenow/youtube-downloader/constant"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/inline"
	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/DowranRowshenow/youtube-downloader/mini"
	"github.com/DowranRowshenow/youtube-downloader/style"
	"github.com/DowranRowshenow/youtube-downloader/util"
	"github.com/DowranRowshenow/youtube-downloader/version"
	"github.com/DowranRowshenow/youtube-downloader/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("quality", "q", "", "Quality to fetch: a listing index, a label like 1080p, or a stream id")
	rootCmd.Flags().Bool("quick", false, "Fetch a single progressive stream and skip merging")
	rootCmd.Flags().BoolP("audio", "a", false, "Fetch audio tracks only")
	rootCmd.Flags().BoolP("json", "j", false, "Dump the stream catalog as JSON instead of downloading")
	rootCmd.MarkFlagsMutuallyExclusive("quick", "audio")

	rootCmd.PersistentFlags().StringP("output", "o", "", "Directory to write the final container to")
	lo.Must0(viper.BindPFlag(key.DownloadDir, rootCmd.PersistentFlags().Lookup("output")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the ytgrab application.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [url]",
	Short: "A command-line video downloader with quality selection and track merging",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line video downloader with quality selection and track merging"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		// No URL drops into the interactive flow; a URL argument runs the
		// whole pipeline non-interactively.
		if len(args) == 0 {
			err := mini.Run(&mini.Options{})
			if err != nil && err.Error() != "interrupt" {
				handleErr(err)
			}
			return
		}

		src := createSource()
		handleErr(inline.Run(&inline.Options{
			Source:  src,
			URL:     args[0],
			Quality: lo.Must(cmd.Flags().GetString("quality")),
			Quick:   lo.Must(cmd.Flags().GetBool("quick")),
			Audio:   lo.Must(cmd.Flags().GetBool("audio")),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
		}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
