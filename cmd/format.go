package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/ui/components"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid question ID %q", s)
	}
	return id, nil
}

// parseCategories validates category flag values. Empty input yields nil.
func parseCategories(values []string) ([]question.Category, error) {
	var out []question.Category
	for _, v := range values {
		c, err := question.ParseCategory(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// parseDifficulties validates difficulty flag values. Empty input yields nil.
func parseDifficulties(values []string) ([]question.Difficulty, error) {
	var out []question.Difficulty
	for _, v := range values {
		d, err := question.ParseDifficulty(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// optionalCategory parses a single category flag; "" means unset.
func optionalCategory(s string) (question.Category, error) {
	if s == "" {
		return "", nil
	}
	return question.ParseCategory(s)
}

// optionalDifficulty parses a single difficulty flag; "" means unset.
func optionalDifficulty(s string) (question.Difficulty, error) {
	if s == "" {
		return "", nil
	}
	return question.ParseDifficulty(s)
}

func printQuestionTable(w io.Writer, qs []question.Question) {
	fmt.Fprintf(w, "%-5s  %-14s  %-6s  %s\n", "ID", "Category", "Level", "Title")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	for _, q := range qs {
		fmt.Fprintf(w, "%-5d  %-14s  %-6s  %s\n",
			q.ID, q.Category, q.Difficulty, components.Truncate(q.Title, 48))
	}
}

func printPage(w io.Writer, page *question.Page) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No questions found.")
		return
	}
	printQuestionTable(w, page.Items)
	fmt.Fprintf(w, "\nPage %d/%d (%d questions)\n", page.Page, max(page.Pages, 1), page.Total)
}

func printQuestion(w io.Writer, q *question.Question) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:         %d\n", q.ID)
	fmt.Fprintf(w, "Title:      %s\n", q.Title)
	fmt.Fprintf(w, "Category:   %s\n", q.Category.Label())
	fmt.Fprintf(w, "Difficulty: %s\n", q.Difficulty.Label())
	if len(q.Tags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", strings.Join(q.Tags, ", "))
	}
	fmt.Fprintf(w, "Created:    %s\n", q.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if q.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:    %s\n", q.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(w, "\n%s\nQuestion\n%s\n%s\n", sep, sep, q.Content)
	if q.HasAnalysis() {
		fmt.Fprintf(w, "\n%s\nAnalysis\n%s\n%s\n", sep, sep, q.Analysis)
	}
}
