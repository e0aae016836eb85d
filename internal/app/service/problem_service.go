package service

import (
	"context"
	"encoding/json"
	"fmt"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ProblemService struct {
	problemRepo repository.ProblemRepository
}

func NewProblemService(problemRepo repository.ProblemRepository) *ProblemService {
	return &ProblemService{problemRepo: problemRepo}
}

type CreateProblemRequest struct {
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	Difficulty         model.ProblemDifficulty `json:"difficulty"`
	Tags               []string                `json:"tags"`
	Examples           json.RawMessage         `json:"examples"`
	Constraints        string                  `json:"constraints"`
	Hints              *string                 `json:"hints,omitempty"`
	Editorial          *string                 `json:"editorial,omitempty"`
	Testcases          json.RawMessage         `json:"testcases"`
	CodeSnippets       json.RawMessage         `json:"code_snippets"`
	ReferenceSolutions json.RawMessage         `json:"reference_solutions"`
}

func (s *ProblemService) CreateProblem(ctx context.Context, authorID string, req CreateProblemRequest) (*model.Problem, error) {
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("title and description are required: %w", common.ErrBadRequest)
	}
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be EASY, MEDIUM or HARD: %w", common.ErrValidation)
	}

	problem := &model.Problem{
		ID:                 uuid.NewString(),
		Title:              req.Title,
		Slug:               slug.Make(req.Title),
		Description:        req.Description,
		Difficulty:         req.Difficulty,
		Tags:               req.Tags,
		UserID:             authorID,
		Examples:           req.Examples,
		Constraints:        req.Constraints,
		Hints:              req.Hints,
		Editorial:          req.Editorial,
		Testcases:          req.Testcases,
		CodeSnippets:       req.CodeSnippets,
		ReferenceSolutions: req.ReferenceSolutions,
	}
	if problem.Tags == nil {
		problem.Tags = []string{}
	}

	if err := s.problemRepo.CreateProblem(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}
	return problem, nil
}

func (s *ProblemService) UpdateProblem(ctx context.Context, problemID string, req CreateProblemRequest) (*model.Problem, error) {
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be EASY, MEDIUM or HARD: %w", common.ErrValidation)
	}
	problem, err := s.problemRepo.FindProblemByID(ctx, problemID)
	if err != nil {
		return nil, err
	}

	problem.Title = req.Title
	problem.Slug = slug.Make(req.Title)
	problem.Description = req.Description
	problem.Difficulty = req.Difficulty
	problem.Tags = req.Tags
	problem.Examples = req.Examples
	problem.Constraints = req.Constraints
	problem.Hints = req.Hints
	problem.Editorial = req.Editorial
	problem.Testcases = req.Testcases
	problem.CodeSnippets = req.CodeSnippets
	problem.ReferenceSolutions = req.ReferenceSolutions
	if problem.Tags == nil {
		problem.Tags = []string{}
	}

	if err := s.problemRepo.UpdateProblem(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}
	return problem, nil
}

func (s *ProblemService) DeleteProblem(ctx context.Context, problemID string) error {
	return s.problemRepo.DeleteProblem(ctx, problemID)
}

func (s *ProblemService) ListProblems(ctx context.Context, page, pageSize int, difficulty model.ProblemDifficulty, tags []string, role model.UserRole) ([]model.Problem, int, error) {
	if difficulty != "" && !difficulty.Valid() {
		return nil, 0, fmt.Errorf("unknown difficulty %q: %w", difficulty, common.ErrValidation)
	}
	offset := (page - 1) * pageSize
	problems, total, err := s.problemRepo.ListProblems(ctx, pageSize, offset, difficulty, tags)
	if err != nil {
		return nil, 0, err
	}
	if role != model.RoleAdmin {
		for i := range problems {
			problems[i].Testcases = nil
			problems[i].ReferenceSolutions = nil
		}
	}
	return problems, total, nil
}

func (s *ProblemService) GetProblemBySlug(ctx context.Context, problemSlug string, role model.UserRole) (*model.Problem, error) {
	problem, err := s.problemRepo.FindProblemBySlug(ctx, problemSlug)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin {
		problem.Testcases = nil
		problem.ReferenceSolutions = nil
	}
	return problem, nil
}

func (s *ProblemService) GetProblemByID(ctx context.Context, problemID string) (*model.Problem, error) {
	return s.problemRepo.FindProblemByID(ctx, problemID)
}
