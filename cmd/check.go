// Package cmd implements the command-line interface for ytgrab.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/DowranRowshenow/youtube-downloader/constant"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/muxer"
	"github.com/DowranRowshenow/youtube-downloader/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// CheckDependencies verifies the availability of required system dependencies.
// yt-dlp is mandatory for all modes; ffmpeg is resolved separately because a
// configured fallback binary can stand in for it.
func CheckDependencies() {
	_, err := exec.LookPath("yt-dlp")
	if err != nil {
		printMissingDependencyError("yt-dlp")
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install " + dep
	case constant.Linux:
		installCmd = "sudo apt install " + dep
	case constant.Windows:
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(lipgloss.Color("9")).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.Bold(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd reports the resolution status of the external tools the pipeline depends on.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the required external tools are available",
	Run: func(cmd *cobra.Command, args []string) {
		if path, err := exec.LookPath("yt-dlp"); err == nil {
			fmt.Printf("%s yt-dlp %s\n", icon.Get(icon.Success), style.Faint(path))
		} else {
			fmt.Printf("%s yt-dlp not found on PATH\n", icon.Get(icon.Fail))
		}

		if tc, err := muxer.ResolveToolchain(); err == nil {
			fmt.Printf("%s ffmpeg (%s) %s\n", icon.Get(icon.Success), tc.Origin, style.Faint(tc.Path))
		} else {
			fmt.Printf("%s %s\n", icon.Get(icon.Fail), err)
		}
	},
}
