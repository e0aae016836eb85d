package model

import (
	"encoding/json"
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "EASY"
	DifficultyMedium ProblemDifficulty = "MEDIUM"
	DifficultyHard   ProblemDifficulty = "HARD"
)

func (d ProblemDifficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Problem's examples, testcases, code snippets and reference solutions are
// schema-less JSON authored by the problem setter; the database stores them
// as JSONB and the backend never looks inside.
type Problem struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Slug               string            `json:"slug"`
	Description        string            `json:"description"`
	Difficulty         ProblemDifficulty `json:"difficulty"`
	Tags               []string          `json:"tags"`
	UserID             string            `json:"user_id"`
	Examples           json.RawMessage   `json:"examples"`
	Constraints        string            `json:"constraints"`
	Hints              *string           `json:"hints,omitempty"`
	Editorial          *string           `json:"editorial,omitempty"`
	Testcases          json.RawMessage   `json:"testcases,omitempty"` // hidden from non-admin views
	CodeSnippets       json.RawMessage   `json:"code_snippets"`
	ReferenceSolutions json.RawMessage   `json:"reference_solutions,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
