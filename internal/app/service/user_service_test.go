package service

import (
	"context"
	"errors"
	"testing"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
)

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeSubmissionRepo())
	ctx := context.Background()

	user := &model.User{ID: "u1", Email: "a@x.com", Role: model.RoleUser, Password: "hash"}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	name := "Alice"
	updated, err := svc.UpdateProfile(ctx, "u1", UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name == nil || *updated.Name != "Alice" {
		t.Errorf("expected name Alice, got %v", updated.Name)
	}
	if updated.Password != "" {
		t.Error("password hash must not be returned")
	}
}

func TestDeleteUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeSubmissionRepo())
	ctx := context.Background()

	user := &model.User{ID: "u1", Email: "a@x.com", Role: model.RoleUser}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.GetProfile(ctx, "u1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("deleted user should be gone, got %v", err)
	}
	if err := svc.DeleteUser(ctx, "u1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("double delete should be not found, got %v", err)
	}
}

func TestCountSolvedProblems(t *testing.T) {
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubmissionRepo()
	svc := NewUserService(userRepo, subRepo)
	ctx := context.Background()

	if err := userRepo.Create(ctx, &model.User{ID: "u1", Email: "a@x.com", Role: model.RoleUser}); err != nil {
		t.Fatal(err)
	}
	for _, pid := range []string{"p1", "p2"} {
		if err := subRepo.MarkProblemSolved(ctx, nil, &model.ProblemSolved{ID: pid, UserID: "u1", ProblemID: pid}); err != nil {
			t.Fatal(err)
		}
	}
	// Re-solving p1 must not add a second record.
	if err := subRepo.MarkProblemSolved(ctx, nil, &model.ProblemSolved{ID: "again", UserID: "u1", ProblemID: "p1"}); err != nil {
		t.Fatal(err)
	}

	count, err := svc.CountSolvedProblems(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 solved problems, got %d", count)
	}
}
