package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Draw random questions from the bank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		count, _ := flags.GetInt("count")
		rawCats, _ := flags.GetStringSlice("category")
		rawDiffs, _ := flags.GetStringSlice("difficulty")

		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}
		cats, err := parseCategories(rawCats)
		if err != nil {
			return err
		}
		diffs, err := parseDifficulties(rawDiffs)
		if err != nil {
			return err
		}

		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		qs, err := client.RandomQuestions(cmd.Context(), question.RandomRequest{
			Count:        count,
			Categories:   cats,
			Difficulties: diffs,
		})
		out := cmd.OutOrStdout()
		if api.IsNotFound(err) {
			fmt.Fprintln(out, "No questions matched.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("draw random questions: %w", err)
		}
		if len(qs) == 0 {
			fmt.Fprintln(out, "No questions matched.")
			return nil
		}
		printQuestionTable(out, qs)
		if len(qs) < count {
			fmt.Fprintf(out, "\nOnly %d of %d requested questions were available.\n", len(qs), count)
		}
		return nil
	},
}

func init() {
	randomCmd.Flags().IntP("count", "n", 5, "Number of questions")
	randomCmd.Flags().StringSliceP("category", "c", nil, "Allowed category (repeatable)")
	randomCmd.Flags().StringSliceP("difficulty", "d", nil, "Allowed difficulty (repeatable)")
}
