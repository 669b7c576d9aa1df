// ABOUTME: Standalone study timer command
// ABOUTME: Runs the stopwatch without logging in and prints the total on exit

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/newsxstudy/newsxstudy/cli/internal/study"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Run the study timer",
	Long: `Run the study stopwatch in the terminal.

Keys: s start, p stop, space toggle, q quit. No account is needed.`,
	Run: func(cmd *cobra.Command, args []string) {
		seconds, err := tui.RunStudy()
		if err != nil {
			printError(os.Stderr, err)
			os.Exit(1)
		}
		writeStudySummary(os.Stdout, seconds)
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
}

// writeStudySummary prints the total time counted, if any
func writeStudySummary(w io.Writer, seconds int) {
	if seconds <= 0 {
		return
	}
	if IsJSONOutput() {
		output := map[string]interface{}{
			"elapsed_seconds": seconds,
			"display":         study.Format(seconds),
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Studied %s\n", study.Format(seconds))
}
