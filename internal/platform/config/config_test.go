package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_NAME", "leetlab_db")
	Load()

	if AppConfig.APIPort != "8080" {
		t.Errorf("expected default port 8080, got %q", AppConfig.APIPort)
	}
	if !strings.Contains(AppConfig.DBConnStr, "dbname=leetlab_db") {
		t.Errorf("expected assembled conn string, got %q", AppConfig.DBConnStr)
	}
	if AppConfig.ExecutionQueueName == "" {
		t.Error("execution queue name should have a default")
	}
}

func TestLoadDatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:pw@db.internal:5432/judge?sslmode=require")
	Load()

	if AppConfig.DBConnStr != "postgres://app:pw@db.internal:5432/judge?sslmode=require" {
		t.Errorf("DATABASE_URL should override the assembled conn string, got %q", AppConfig.DBConnStr)
	}
}

func TestLoadDiscreteVars(t *testing.T) {
	t.Setenv("DB_HOST", "pg.example")
	t.Setenv("DB_NAME", "customdb")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	Load()

	if !strings.Contains(AppConfig.DBConnStr, "host=pg.example") {
		t.Errorf("expected host from env, got %q", AppConfig.DBConnStr)
	}
	if !strings.Contains(AppConfig.DBConnStr, "dbname=customdb") {
		t.Errorf("expected dbname from env, got %q", AppConfig.DBConnStr)
	}
	if AppConfig.JWTExp.Hours() != 2 {
		t.Errorf("expected 2h expiry, got %v", AppConfig.JWTExp)
	}
}

func TestGetEnvAsIntFallback(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvAsInt("SOME_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	t.Setenv("SOME_INT", "42")
	if got := getEnvAsInt("SOME_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
