package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zayfen/InterviewQuestionBank/internal/selection"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in interview presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-15s  %-15s  %4s  %6s  %4s  %5s\n", "Key", "Name", "Easy", "Medium", "Hard", "Total")
		fmt.Fprintln(out, strings.Repeat("─", 58))
		for _, p := range selection.KnownPresets() {
			fmt.Fprintf(out, "%-15s  %-15s  %4d  %6d  %4d  %5d\n",
				p.Key, p.Name, p.Easy, p.Medium, p.Hard, p.Total())
		}
		fmt.Fprintln(out, "\nStart one with: iqb practice --preset <key>")
		return nil
	},
}
