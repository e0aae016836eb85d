package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leetlab/internal/common"
	"leetlab/internal/common/security"
	"leetlab/internal/platform/config"
)

func setupSecurity(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

func TestRegisterAndLogin(t *testing.T) {
	setupSecurity(t)
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", resp.User.Email)
	}
	if resp.User.Password != "" {
		t.Error("password hash must not be returned")
	}
	if resp.User.Role != "USER" {
		t.Errorf("default role should be USER, got %q", resp.User.Role)
	}

	login, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login should return the registered user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupSecurity(t)
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "other"})
	if err == nil {
		t.Fatal("duplicate email should fail")
	}
	var uniqueErr *common.UniqueViolationError
	if !errors.As(err, &uniqueErr) {
		t.Fatalf("expected UniqueViolationError, got %v", err)
	}
	if len(uniqueErr.Fields) != 1 || uniqueErr.Fields[0] != "email" {
		t.Errorf("violation should name the email field, got %v", uniqueErr.Fields)
	}
}

func TestRegisterValidation(t *testing.T) {
	setupSecurity(t)
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "", Password: ""})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupSecurity(t)
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "correct"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("wrong password should be unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@x.com", Password: "x"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unknown email should be unauthorized (not NotFound), got %v", err)
	}
}
