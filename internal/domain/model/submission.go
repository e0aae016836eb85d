package model

import (
	"encoding/json"
	"time"
)

type SubmissionStatus string

const (
	StatusPending           SubmissionStatus = "Pending"
	StatusProcessing        SubmissionStatus = "Processing"
	StatusAccepted          SubmissionStatus = "Accepted"
	StatusWrongAnswer       SubmissionStatus = "Wrong Answer"
	StatusTimeLimitExceeded SubmissionStatus = "Time Limit Exceeded"
	StatusCompileError      SubmissionStatus = "Compile Error"
	StatusRuntimeError      SubmissionStatus = "Runtime Error"
)

// Memory and Time come back from the executor as display strings
// ("256 KB", "0.02 s") and are stored opaquely.
type Submission struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	ProblemID     string           `json:"problem_id"`
	SourceCode    json.RawMessage  `json:"source_code"`
	Language      string           `json:"language"`
	Stdin         *string          `json:"stdin,omitempty"`
	Stdout        *string          `json:"stdout,omitempty"`
	Stderr        *string          `json:"stderr,omitempty"`
	CompileOutput *string          `json:"compile_output,omitempty"`
	Status        SubmissionStatus `json:"status"`
	Memory        *string          `json:"memory,omitempty"`
	Time          *string          `json:"time,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	TestCaseResults []TestCaseResult `json:"test_case_results,omitempty"`
}

type TestCaseResult struct {
	ID            string           `json:"id"`
	SubmissionID  string           `json:"submission_id"`
	TestCase      int              `json:"test_case"`
	Passed        bool             `json:"passed"`
	Stdout        *string          `json:"stdout,omitempty"`
	Expected      string           `json:"expected"`
	Stderr        *string          `json:"stderr,omitempty"`
	CompileOutput *string          `json:"compile_output,omitempty"`
	Status        SubmissionStatus `json:"status"`
	Memory        *string          `json:"memory,omitempty"`
	Time          *string          `json:"time,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProblemSolved records that a user has at least one accepted submission for
// a problem. At most one row per (user, problem).
type ProblemSolved struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProblemID string    `json:"problem_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
