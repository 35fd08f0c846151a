package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayfen/InterviewQuestionBank/internal/api/apitest"
	"github.com/zayfen/InterviewQuestionBank/internal/app"
	"github.com/zayfen/InterviewQuestionBank/internal/question"
	"github.com/zayfen/InterviewQuestionBank/internal/selection"
)

func seed() []question.Question {
	return []question.Question{
		{ID: 1, Title: "Reverse a linked list", Content: "In place.", Category: question.CategoryAlgorithm, Difficulty: question.DifficultyEasy, Analysis: "Three pointers."},
		{ID: 2, Title: "Design a URL shortener", Content: "At scale.", Category: question.CategorySystemDesign, Difficulty: question.DifficultyHard},
		{ID: 3, Title: "Explain indexes", Content: "B-trees.", Category: question.CategoryDatabase, Difficulty: question.DifficultyMedium, Tags: []string{"sql"}},
	}
}

// resetFlags restores every flag in the tree to its default so that
// consecutive executions do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI against srv and returns its stdout.
func execute(t *testing.T, srv *apitest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IQB_LOG_FILE", "")
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	full := []string{"--env-file", ""}
	if srv != nil {
		full = append(full, "--api-url", srv.APIURL())
	}
	rootCmd.SetArgs(append(full, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// stubApp replaces the TUI launcher and records the options it got.
func stubApp(t *testing.T) *[]app.Options {
	t.Helper()
	var calls []app.Options
	prev := runApp
	runApp = func(_ *cobra.Command, opts app.Options) error {
		calls = append(calls, opts)
		return nil
	}
	t.Cleanup(func() { runApp = prev })
	return &calls
}

func TestQuestionsList(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Reverse a linked list")
	assert.Contains(t, out, "Design a URL shortener")
	assert.Contains(t, out, "Page 1/1 (3 questions)")
	assert.Equal(t, "/api/v1/questions/", srv.LastRequest().Path)
}

func TestQuestionsList_Filters(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "q", "list", "-c", "database", "-d", "medium", "--size", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Explain indexes")
	assert.NotContains(t, out, "Reverse a linked list")

	req := srv.LastRequest()
	assert.Equal(t, []string{"database"}, req.Query["category"])
	assert.Equal(t, []string{"medium"}, req.Query["difficulty"])
	assert.Equal(t, []string{"5"}, req.Query["size"])
}

func TestQuestionsList_RejectsBadFlagsWithoutRequest(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	_, err := execute(t, srv, "questions", "list", "--category", "cooking")
	require.Error(t, err)
	_, err = execute(t, srv, "questions", "list", "--size", "1000")
	require.Error(t, err)
	_, err = execute(t, srv, "questions", "list", "--page", "0")
	require.Error(t, err)
	assert.Empty(t, srv.Requests())
}

func TestQuestionsSearch(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "search", "linked", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Reverse a linked list")

	req := srv.LastRequest()
	assert.Equal(t, "/api/v1/questions/search", req.Path)
	assert.Equal(t, []string{"linked list"}, req.Query["q"])
}

func TestQuestionsShow(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reverse a linked list")
	assert.Contains(t, out, "In place.")
	assert.Contains(t, out, "Three pointers.")
}

func TestQuestionsShow_Errors(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	_, err := execute(t, srv, "questions", "show", "abc")
	require.Error(t, err)
	assert.Empty(t, srv.Requests())

	_, err = execute(t, srv, "questions", "show", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get question 99")
}

func TestQuestionsCreate(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "create",
		"--title", "What is a goroutine?",
		"--content", "Explain scheduling.",
		"--category", "backend",
		"--difficulty", "easy",
		"--tag", "go", "--tag", "concurrency")
	require.NoError(t, err)
	assert.Contains(t, out, "Created question #4")

	q, ok := srv.Question(4)
	require.True(t, ok)
	assert.Equal(t, question.CategoryBackend, q.Category)
	assert.Equal(t, []string{"go", "concurrency"}, q.Tags)
}

func TestQuestionsCreate_InvalidDifficulty(t *testing.T) {
	srv := apitest.NewServer(t)

	_, err := execute(t, srv, "questions", "create",
		"--title", "t", "--content", "c", "--category", "backend", "--difficulty", "extreme")
	require.Error(t, err)
	assert.Empty(t, srv.Requests())
}

func TestQuestionsUpdate_SendsOnlyChangedFields(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "update", "3", "--difficulty", "hard")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated question #3")

	var body map[string]any
	require.NoError(t, json.Unmarshal(srv.LastRequest().Body, &body))
	assert.Equal(t, map[string]any{"difficulty": "hard"}, body)

	q, _ := srv.Question(3)
	assert.Equal(t, question.DifficultyHard, q.Difficulty)
	assert.Equal(t, "Explain indexes", q.Title)
}

func TestQuestionsUpdate_NothingToUpdate(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	_, err := execute(t, srv, "questions", "update", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
	assert.Empty(t, srv.Requests())
}

func TestQuestionsDelete(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "questions", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted question #2")
	assert.Equal(t, 2, srv.Len())
}

func TestQuestionsGenerate(t *testing.T) {
	srv := apitest.NewServer(t)

	out, err := execute(t, srv, "questions", "generate", "-c", "frontend", "-d", "medium", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 questions.")
	assert.Equal(t, 2, srv.Len())
}

func TestQuestionsCategories(t *testing.T) {
	srv := apitest.NewServer(t)

	out, err := execute(t, srv, "questions", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "system_design")
	assert.Contains(t, out, "medium")
}

func TestRandom(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "random", "-n", "5", "-d", "easy", "-d", "hard")
	require.NoError(t, err)
	assert.Contains(t, out, "Reverse a linked list")
	assert.Contains(t, out, "Design a URL shortener")
	assert.Contains(t, out, "Only 2 of 5 requested questions were available.")

	req := srv.LastRequest()
	assert.Equal(t, []string{"easy", "hard"}, req.Query["difficulties"])
}

func TestRandom_NoMatch(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)

	out, err := execute(t, srv, "random", "-c", "mobile")
	require.NoError(t, err)
	assert.Contains(t, out, "No questions matched.")
}

func TestRandom_ServerError(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	srv.FailNext(http.StatusInternalServerError, "boom")

	_, err := execute(t, srv, "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draw random questions")
}

func TestPresets(t *testing.T) {
	out, err := execute(t, nil, "presets")
	require.NoError(t, err)
	for _, p := range selection.KnownPresets() {
		assert.Contains(t, out, p.Key)
	}
}

func TestPractice_Default(t *testing.T) {
	calls := stubApp(t)

	_, err := execute(t, nil, "practice")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, selection.DefaultBuckets(), (*calls)[0].Start)
}

func TestPractice_Modes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want selection.Spec
	}{
		{"preset", []string{"--preset", "backend"}, selection.PresetSpec{Key: "backend"}},
		{"buckets", []string{"--easy", "1", "--hard", "2"}, selection.BucketSpec{Easy: 1, Hard: 2}},
		{"filter", []string{"-n", "4", "-c", "react"}, selection.FilterSpec{
			Count:      4,
			Categories: []question.Category{question.CategoryReact},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubApp(t)

			_, err := execute(t, nil, append([]string{"practice"}, tt.args...)...)
			require.NoError(t, err)
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.want, (*calls)[0].Start)
		})
	}
}

func TestPractice_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"mixed modes", []string{"--preset", "quick", "--easy", "2"}},
		{"negative bucket", []string{"--medium", "-1"}},
		{"blank preset", []string{"--preset", " "}},
		{"unknown category", []string{"-c", "cooking"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubApp(t)

			_, err := execute(t, nil, append([]string{"practice"}, tt.args...)...)
			require.Error(t, err)
			assert.Empty(t, *calls)
		})
	}
}

func TestRoot_OpensTUI(t *testing.T) {
	calls := stubApp(t)

	_, err := execute(t, nil)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Nil(t, (*calls)[0].Start)
}

func TestRoot_MissingExplicitEnvFile(t *testing.T) {
	stubApp(t)
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetArgs([]string{"--env-file", "does-not-exist.env"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestResolveConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("IQB_API_URL", "http://env.example:8000/api/v1")
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	require.NoError(t, rootCmd.PersistentFlags().Set("api-url", "http://flag.example:9000/api/v1"))
	cfg, err := resolveConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example:9000/api/v1", cfg.BaseURL)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iqb ")
}
