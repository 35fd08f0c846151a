package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zayfen/InterviewQuestionBank/internal/app"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a mock interview directly",
	Long: "Start a mock interview without going through the menu.\n\n" +
		"Pick questions with one of:\n" +
		"  --preset <key>                 a built-in recipe (see `iqb presets`)\n" +
		"  --easy/--medium/--hard         a count per difficulty\n" +
		"  --count/--category/--difficulty  a random draw\n\n" +
		"With no selection flags the default mix is used.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := practiceSpec(cmd)
		if err != nil {
			return err
		}
		if err := spec.Validate(); err != nil {
			return err
		}
		return runApp(cmd, app.Options{Start: spec})
	},
}

// practiceSpec maps the selection flags to a spec. Flags from different
// modes cannot be combined.
func practiceSpec(cmd *cobra.Command) (selection.Spec, error) {
	flags := cmd.Flags()
	usesPreset := flags.Changed("preset")
	usesBuckets := flags.Changed("easy") || flags.Changed("medium") || flags.Changed("hard")
	usesFilter := flags.Changed("count") || flags.Changed("category") || flags.Changed("difficulty")

	modes := 0
	for _, used := range []bool{usesPreset, usesBuckets, usesFilter} {
		if used {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("choose one of --preset, --easy/--medium/--hard or --count/--category/--difficulty")
	}

	switch {
	case usesPreset:
		key, _ := flags.GetString("preset")
		return selection.PresetSpec{Key: key}, nil

	case usesBuckets:
		var spec selection.BucketSpec
		if flags.Changed("easy") {
			spec.Easy, _ = flags.GetInt("easy")
		}
		if flags.Changed("medium") {
			spec.Medium, _ = flags.GetInt("medium")
		}
		if flags.Changed("hard") {
			spec.Hard, _ = flags.GetInt("hard")
		}
		return spec, nil

	case usesFilter:
		count, _ := flags.GetInt("count")
		rawCats, _ := flags.GetStringSlice("category")
		rawDiffs, _ := flags.GetStringSlice("difficulty")
		cats, err := parseCategories(rawCats)
		if err != nil {
			return nil, err
		}
		diffs, err := parseDifficulties(rawDiffs)
		if err != nil {
			return nil, err
		}
		return selection.FilterSpec{Count: count, Categories: cats, Difficulties: diffs}, nil
	}
	return selection.DefaultBuckets(), nil
}

func init() {
	practiceCmd.Flags().StringP("preset", "p", "", "Built-in preset key")
	practiceCmd.Flags().Int("easy", 0, "Easy questions")
	practiceCmd.Flags().Int("medium", 0, "Medium questions")
	practiceCmd.Flags().Int("hard", 0, "Hard questions")
	practiceCmd.Flags().IntP("count", "n", 5, "Number of random questions")
	practiceCmd.Flags().StringSliceP("category", "c", nil, "Allowed category (repeatable)")
	practiceCmd.Flags().StringSliceP("difficulty", "d", nil, "Allowed difficulty (repeatable)")
}
