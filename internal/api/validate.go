package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON schema used to check response bodies. It is
// compiled once, on first use.
type Schema struct {
	Name       string
	Definition map[string]any

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":         map[string]any{"type": "integer"},
		"title":      map[string]any{"type": "string"},
		"content":    map[string]any{"type": "string"},
		"category":   map[string]any{"type": "string"},
		"difficulty": map[string]any{"type": "string"},
		"analysis":   map[string]any{"type": []any{"string", "null"}},
		"tags":       map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
		"created_at": map[string]any{"type": "string"},
		"updated_at": map[string]any{"type": []any{"string", "null"}},
	},
	"required": []any{"id", "title", "content", "category", "difficulty"},
}

// QuestionSchema describes a single question.
var QuestionSchema = &Schema{
	Name:       "question",
	Definition: questionDefinition,
}

// QuestionListSchema describes a bare array of questions.
var QuestionListSchema = &Schema{
	Name: "question-list",
	Definition: map[string]any{
		"type":  "array",
		"items": questionDefinition,
	},
}

// PageSchema describes a paginated question list.
var PageSchema = &Schema{
	Name: "question-page",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{"type": "array", "items": questionDefinition},
			"total": map[string]any{"type": "integer", "minimum": 0},
			"page":  map[string]any{"type": "integer", "minimum": 0},
			"size":  map[string]any{"type": "integer", "minimum": 0},
			"pages": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []any{"items", "total", "page", "size", "pages"},
	},
}

// StringListSchema describes an array of strings.
var StringListSchema = &Schema{
	Name: "string-list",
	Definition: map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	},
}

// decodeResponse checks raw against schema and unmarshals it into out.
// A nil schema only requires well-formed JSON. Failures are
// *ErrInvalidResponse.
func decodeResponse(schema *Schema, raw json.RawMessage, out any) error {
	if err := schema.check(raw); err != nil {
		return &ErrInvalidResponse{Body: raw, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Body: raw, Err: fmt.Errorf("decode %s: %w", schema.name(), err)}
	}
	return nil
}

// check reports why raw is not a valid body for s.
func (s *Schema) check(raw json.RawMessage) error {
	body, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("question bank sent malformed JSON: %w", err)
	}
	if s == nil {
		return nil
	}
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	if err := compiled.Validate(body); err != nil {
		return fmt.Errorf("%s does not match the expected shape: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) name() string {
	if s == nil {
		return "response"
	}
	return s.Name
}

// compile builds the schema on first use. The result, including a
// compile error, is kept for the life of the process.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		s.compiled, s.compileErr = compileDefinition(s.Name, s.Definition)
	})
	return s.compiled, s.compileErr
}

// compileDefinition round-trips def through JSON so the compiler sees the
// number and array types it expects.
func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", name, err)
	}

	loc := "iqb://schemas/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("register %s schema: %w", name, err)
	}
	compiled, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return compiled, nil
}
