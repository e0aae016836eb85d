package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"

	"github.com/google/uuid"
)

// WebhookService receives execution results from the external judge and
// persists them. The judging itself happens elsewhere; this service only
// records what came back.
type WebhookService struct {
	submissionRepo repository.SubmissionRepository
	db             *sql.DB
}

func NewWebhookService(subRepo repository.SubmissionRepository, db *sql.DB) *WebhookService {
	return &WebhookService{submissionRepo: subRepo, db: db}
}

type TestCaseResultPayload struct {
	TestCase      int     `json:"test_case"`
	Passed        bool    `json:"passed"`
	Stdout        *string `json:"stdout,omitempty"`
	Expected      string  `json:"expected"`
	Stderr        *string `json:"stderr,omitempty"`
	CompileOutput *string `json:"compile_output,omitempty"`
	Status        string  `json:"status"`
	Memory        *string `json:"memory,omitempty"`
	Time          *string `json:"time,omitempty"`
}

type ExecutionResultPayload struct {
	SubmissionID  string                  `json:"submission_id"`
	Status        string                  `json:"status"`
	Stdout        *string                 `json:"stdout,omitempty"`
	Stderr        *string                 `json:"stderr,omitempty"`
	CompileOutput *string                 `json:"compile_output,omitempty"`
	Memory        *string                 `json:"memory,omitempty"`
	Time          *string                 `json:"time,omitempty"`
	TestCases     []TestCaseResultPayload `json:"test_cases"`
}

// RecordExecutionResult writes the submission outcome and its per-test-case
// results in one transaction, and marks the problem solved on Accepted.
func (s *WebhookService) RecordExecutionResult(ctx context.Context, payload ExecutionResultPayload) (*model.Submission, error) {
	if payload.SubmissionID == "" || payload.Status == "" {
		return nil, fmt.Errorf("submission_id and status are required: %w", common.ErrBadRequest)
	}

	submission, err := s.submissionRepo.GetSubmissionByID(ctx, payload.SubmissionID)
	if err != nil {
		return nil, err
	}

	submission.Status = model.SubmissionStatus(payload.Status)
	submission.Stdout = payload.Stdout
	submission.Stderr = payload.Stderr
	submission.CompileOutput = payload.CompileOutput
	submission.Memory = payload.Memory
	submission.Time = payload.Time

	results := make([]model.TestCaseResult, 0, len(payload.TestCases))
	for _, tc := range payload.TestCases {
		results = append(results, model.TestCaseResult{
			ID:            uuid.NewString(),
			SubmissionID:  submission.ID,
			TestCase:      tc.TestCase,
			Passed:        tc.Passed,
			Stdout:        tc.Stdout,
			Expected:      tc.Expected,
			Stderr:        tc.Stderr,
			CompileOutput: tc.CompileOutput,
			Status:        model.SubmissionStatus(tc.Status),
			Memory:        tc.Memory,
			Time:          tc.Time,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.submissionRepo.UpdateSubmissionResult(ctx, tx, submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	if err := s.submissionRepo.CreateTestCaseResults(ctx, tx, results); err != nil {
		return nil, fmt.Errorf("failed to store test case results: %w", err)
	}
	if submission.Status == model.StatusAccepted {
		solved := &model.ProblemSolved{
			ID:        uuid.NewString(),
			UserID:    submission.UserID,
			ProblemID: submission.ProblemID,
		}
		if err := s.submissionRepo.MarkProblemSolved(ctx, tx, solved); err != nil {
			return nil, fmt.Errorf("failed to mark problem solved: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Recorded execution result for submission %s: %s", submission.ID, submission.Status)
	submission.TestCaseResults = results
	return submission, nil
}
