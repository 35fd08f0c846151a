package question

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("cooking")
	assert.Error(t, err)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "System Design", CategorySystemDesign.Label())
	assert.Equal(t, "mystery", Category("mystery").Label())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("extreme")
	assert.Error(t, err)
}

func TestDifficultyRank(t *testing.T) {
	assert.Less(t, DifficultyEasy.Rank(), DifficultyMedium.Rank())
	assert.Less(t, DifficultyMedium.Rank(), DifficultyHard.Rank())
	assert.Equal(t, 0, Difficulty("").Rank())
	assert.False(t, Difficulty("").Valid())
}

func TestCreateValidate(t *testing.T) {
	valid := Create{
		Title:      "Explain B-trees",
		Content:    "How does a B-tree keep itself balanced?",
		Category:   CategoryDatabase,
		Difficulty: DifficultyMedium,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Create)
		want   string
	}{
		{"missing title", func(c *Create) { c.Title = "" }, "title is required"},
		{"long title", func(c *Create) { c.Title = strings.Repeat("x", MaxTitleLength+1) }, "title exceeds"},
		{"missing content", func(c *Create) { c.Content = "" }, "content is required"},
		{"bad category", func(c *Create) { c.Category = "cooking" }, "unknown category"},
		{"bad difficulty", func(c *Create) { c.Difficulty = "" }, "unknown difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUpdateValidate(t *testing.T) {
	assert.True(t, Update{}.Empty())
	assert.NoError(t, Update{}.Validate())

	empty := ""
	err := Update{Title: &empty}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title cannot be empty")

	bad := Difficulty("extreme")
	assert.Error(t, Update{Difficulty: &bad}.Validate())
}

func TestUpdateOmitsUnsetFields(t *testing.T) {
	title := "New title"
	raw, err := json.Marshal(Update{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New title"}`, string(raw))
}

func TestQuestionDecodesServerShape(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "Two sum",
		"content": "Find two numbers that add up to target.",
		"category": "algorithm",
		"difficulty": "easy",
		"analysis": null,
		"tags": ["hash-map"],
		"created_at": "2024-05-01T10:00:00Z",
		"updated_at": null
	}`
	var q Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, int64(7), q.ID)
	assert.Equal(t, CategoryAlgorithm, q.Category)
	assert.Equal(t, DifficultyEasy, q.Difficulty)
	assert.False(t, q.HasAnalysis())
	assert.Nil(t, q.UpdatedAt)
	assert.Equal(t, []string{"hash-map"}, q.Tags)
}

func TestQuestionDecodesNaiveTimestamps(t *testing.T) {
	raw := `{"id": 1, "title": "t", "content": "c", "category": "backend", "difficulty": "hard",
		"created_at": "2024-05-01T10:00:00.123456", "updated_at": "2024-05-02 08:30:00"}`
	var q Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC), q.CreatedAt)
	require.NotNil(t, q.UpdatedAt)
	assert.Equal(t, time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC), *q.UpdatedAt)
}

func TestQuestionRejectsBadTimestamp(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"id": 1, "created_at": "yesterday"}`), &q)
	assert.ErrorContains(t, err, "created_at")
}
