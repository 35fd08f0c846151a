package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "Manage questions in the bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listQuestions(cmd, "")
	},
}

var questionsSearchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Search question titles and content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listQuestions(cmd, strings.Join(args, " "))
	},
}

// listQuestions backs list and search. A non-empty query uses the
// search endpoint.
func listQuestions(cmd *cobra.Command, query string) error {
	params, err := searchParams(cmd)
	if err != nil {
		return err
	}
	if query != "" {
		params.Query = query
	}

	client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	var page *question.Page
	if params.Query != "" {
		page, err = client.SearchQuestions(ctx, params)
	} else {
		page, err = client.ListQuestions(ctx, params)
	}
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	printPage(cmd.OutOrStdout(), page)
	return nil
}

func searchParams(cmd *cobra.Command) (question.SearchParams, error) {
	flags := cmd.Flags()
	query, _ := flags.GetString("query")
	rawCat, _ := flags.GetString("category")
	rawDiff, _ := flags.GetString("difficulty")
	page, _ := flags.GetInt("page")
	size, _ := flags.GetInt("size")

	cat, err := optionalCategory(rawCat)
	if err != nil {
		return question.SearchParams{}, err
	}
	diff, err := optionalDifficulty(rawDiff)
	if err != nil {
		return question.SearchParams{}, err
	}
	if page < 1 {
		return question.SearchParams{}, fmt.Errorf("--page must be at least 1, got %d", page)
	}
	if size < 1 || size > question.MaxPageSize {
		return question.SearchParams{}, fmt.Errorf("--size must be between 1 and %d, got %d", question.MaxPageSize, size)
	}
	return question.SearchParams{
		Query:      query,
		Category:   cat,
		Difficulty: diff,
		Page:       page,
		Size:       size,
	}, nil
}

var questionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a question with its analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		q, err := client.GetQuestion(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get question %d: %w", id, err)
		}
		printQuestion(cmd.OutOrStdout(), q)
		return nil
	},
}

var questionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a question to the bank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		title, _ := flags.GetString("title")
		content, _ := flags.GetString("content")
		rawCat, _ := flags.GetString("category")
		rawDiff, _ := flags.GetString("difficulty")
		analysis, _ := flags.GetString("analysis")
		tags, _ := flags.GetStringSlice("tag")

		cat, err := question.ParseCategory(rawCat)
		if err != nil {
			return err
		}
		diff, err := question.ParseDifficulty(rawDiff)
		if err != nil {
			return err
		}
		in := question.Create{
			Title:      title,
			Content:    content,
			Category:   cat,
			Difficulty: diff,
			Analysis:   analysis,
			Tags:       tags,
		}
		if err := in.Validate(); err != nil {
			return err
		}

		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		q, err := client.CreateQuestion(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created question #%d: %s\n", q.ID, q.Title)
		return nil
	},
}

var questionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a question; only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := updateFromFlags(cmd)
		if err != nil {
			return err
		}
		if in.Empty() {
			return errors.New("nothing to update: pass at least one field flag")
		}
		if err := in.Validate(); err != nil {
			return err
		}

		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		q, err := client.UpdateQuestion(cmd.Context(), id, in)
		if err != nil {
			return fmt.Errorf("update question %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated question #%d: %s\n", q.ID, q.Title)
		return nil
	},
}

// updateFromFlags sets only the fields whose flags were passed.
func updateFromFlags(cmd *cobra.Command) (question.Update, error) {
	flags := cmd.Flags()
	var in question.Update

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		in.Title = &v
	}
	if flags.Changed("content") {
		v, _ := flags.GetString("content")
		in.Content = &v
	}
	if flags.Changed("analysis") {
		v, _ := flags.GetString("analysis")
		in.Analysis = &v
	}
	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		c, err := question.ParseCategory(raw)
		if err != nil {
			return in, err
		}
		in.Category = &c
	}
	if flags.Changed("difficulty") {
		raw, _ := flags.GetString("difficulty")
		d, err := question.ParseDifficulty(raw)
		if err != nil {
			return in, err
		}
		in.Difficulty = &d
	}
	if flags.Changed("tag") {
		tags, _ := flags.GetStringSlice("tag")
		in.Tags = append([]string{}, tags...)
	}
	return in, nil
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		q, err := client.DeleteQuestion(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete question %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted question #%d: %s\n", q.ID, q.Title)
		return nil
	},
}

var questionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the bank's AI backend to generate questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		rawCat, _ := flags.GetString("category")
		rawDiff, _ := flags.GetString("difficulty")
		count, _ := flags.GetInt("count")

		cat, err := question.ParseCategory(rawCat)
		if err != nil {
			return err
		}
		diff, err := question.ParseDifficulty(rawDiff)
		if err != nil {
			return err
		}
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}

		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		qs, err := client.GenerateQuestions(cmd.Context(), question.GenerateRequest{
			Category:   cat,
			Difficulty: diff,
			Count:      count,
		})
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d questions.\n\n", len(qs))
		printQuestionTable(cmd.OutOrStdout(), qs)
		return nil
	},
}

var questionsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories and difficulties the bank supports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, cleanup, err := newClient(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		cats, err := client.Categories(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		diffs, err := client.Difficulties(ctx)
		if err != nil {
			return fmt.Errorf("list difficulties: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Categories:")
		for _, c := range cats {
			fmt.Fprintf(out, "  %-14s  %s\n", c, question.Category(c).Label())
		}
		fmt.Fprintln(out, "\nDifficulties:")
		for _, d := range diffs {
			fmt.Fprintf(out, "  %s\n", d)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{questionsListCmd, questionsSearchCmd} {
		c.Flags().String("query", "", "Search term")
		c.Flags().StringP("category", "c", "", "Filter by category")
		c.Flags().StringP("difficulty", "d", "", "Filter by difficulty (easy, medium, hard)")
		c.Flags().Int("page", 1, "Page number")
		c.Flags().Int("size", question.DefaultPageSize, "Page size")
	}

	for _, c := range []*cobra.Command{questionsCreateCmd, questionsUpdateCmd} {
		c.Flags().String("title", "", "Question title")
		c.Flags().String("content", "", "Question body")
		c.Flags().StringP("category", "c", "", "Category")
		c.Flags().StringP("difficulty", "d", "", "Difficulty (easy, medium, hard)")
		c.Flags().String("analysis", "", "Reference analysis")
		c.Flags().StringSlice("tag", nil, "Tag (repeatable)")
	}
	_ = questionsCreateCmd.MarkFlagRequired("title")
	_ = questionsCreateCmd.MarkFlagRequired("content")
	_ = questionsCreateCmd.MarkFlagRequired("category")
	_ = questionsCreateCmd.MarkFlagRequired("difficulty")

	questionsGenerateCmd.Flags().StringP("category", "c", "", "Category")
	questionsGenerateCmd.Flags().StringP("difficulty", "d", "", "Difficulty (easy, medium, hard)")
	questionsGenerateCmd.Flags().IntP("count", "n", 3, "Number of questions to generate")
	_ = questionsGenerateCmd.MarkFlagRequired("category")
	_ = questionsGenerateCmd.MarkFlagRequired("difficulty")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsSearchCmd)
	questionsCmd.AddCommand(questionsShowCmd)
	questionsCmd.AddCommand(questionsCreateCmd)
	questionsCmd.AddCommand(questionsUpdateCmd)
	questionsCmd.AddCommand(questionsDeleteCmd)
	questionsCmd.AddCommand(questionsGenerateCmd)
	questionsCmd.AddCommand(questionsCategoriesCmd)
}
