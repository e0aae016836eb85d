package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"
	"leetlab/internal/platform/queue"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	rdb            *redis.Client
	db             *sql.DB // for transactions
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	rdb *redis.Client,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		rdb:            rdb,
		db:             db,
	}
}

type CreateSubmissionRequest struct {
	ProblemID  string          `json:"problem_id"`
	Language   string          `json:"language"`
	SourceCode json.RawMessage `json:"source_code"`
	Stdin      *string         `json:"stdin,omitempty"`
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, userID string, req CreateSubmissionRequest) (*model.Submission, error) {
	if req.ProblemID == "" || req.Language == "" || len(req.SourceCode) == 0 {
		return nil, fmt.Errorf("problem_id, language and source_code are required: %w", common.ErrBadRequest)
	}

	submission := &model.Submission{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProblemID:  req.ProblemID,
		SourceCode: req.SourceCode,
		Language:   req.Language,
		Stdin:      req.Stdin,
		Status:     model.StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A nonexistent problem_id fails here with a ForeignKeyViolationError
	// from the submissions_problem_id_fkey constraint.
	if err := s.submissionRepo.CreateSubmission(ctx, tx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	if s.rdb != nil {
		if err := queue.EnqueueSubmission(ctx, s.rdb, submission.ID); err != nil {
			// The row exists; execution can be retried out of band.
			log.Printf("WARNING: failed to enqueue submission %s: %v", submission.ID, err)
		}
	}
	return submission, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, userID, submissionID string) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, common.ErrForbidden
	}
	results, err := s.submissionRepo.GetTestCaseResults(ctx, submissionID)
	if err != nil {
		return nil, common.Errorf("failed to load test case results: %w", err)
	}
	sub.TestCaseResults = results
	return sub, nil
}

func (s *SubmissionService) ListSubmissions(ctx context.Context, userID, problemID string, page, pageSize int) ([]model.Submission, int, error) {
	if problemID == "" {
		return nil, 0, fmt.Errorf("problem_id is required: %w", common.ErrBadRequest)
	}
	offset := (page - 1) * pageSize
	return s.submissionRepo.ListSubmissionsForUserProblem(ctx, userID, problemID, pageSize, offset)
}
