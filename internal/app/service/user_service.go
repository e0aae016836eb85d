package service

import (
	"context"
	"fmt"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"
)

type UserService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubmissionRepository) *UserService {
	return &UserService{userRepo: userRepo, submissionRepo: subRepo}
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Image != nil {
		user.Image = req.Image
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// DeleteUser removes the account. The database cascades take the user's
// problems, submissions, solved records and playlists with it, transitively
// removing the dependent test case results and playlist entries.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) GetSolvedProblems(ctx context.Context, userID string) ([]model.Problem, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	problems, err := s.submissionRepo.ListSolvedProblems(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to list solved problems: %w", err)
	}
	// Hidden testcases and reference solutions stay out of user-facing views.
	for i := range problems {
		problems[i].Testcases = nil
		problems[i].ReferenceSolutions = nil
	}
	return problems, nil
}

func (s *UserService) CountSolvedProblems(ctx context.Context, userID string) (int, error) {
	return s.submissionRepo.CountSolvedProblemsByUser(ctx, userID)
}
