package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL, applied in order at startup. Statements are idempotent so a
// restart against an existing database is a no-op. Cascades and uniqueness
// live here rather than in application code: the database owns referential
// integrity.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT NOT NULL,
		image TEXT,
		role TEXT NOT NULL DEFAULT 'USER',
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS problems (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]',
		user_id TEXT NOT NULL,
		examples JSONB NOT NULL DEFAULT '{}',
		constraints TEXT NOT NULL DEFAULT '',
		hints TEXT,
		editorial TEXT,
		testcases JSONB NOT NULL DEFAULT '[]',
		code_snippets JSONB NOT NULL DEFAULT '{}',
		reference_solutions JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT problems_slug_key UNIQUE (slug),
		CONSTRAINT problems_user_id_fkey FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		problem_id TEXT NOT NULL,
		source_code JSONB NOT NULL,
		language TEXT NOT NULL,
		stdin TEXT,
		stdout TEXT,
		stderr TEXT,
		compile_output TEXT,
		status TEXT NOT NULL,
		memory TEXT,
		time TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT submissions_user_id_fkey FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT submissions_problem_id_fkey FOREIGN KEY (problem_id)
			REFERENCES problems (id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS test_case_results (
		id TEXT PRIMARY KEY,
		submission_id TEXT NOT NULL,
		test_case INTEGER NOT NULL,
		passed BOOLEAN NOT NULL,
		stdout TEXT,
		expected TEXT NOT NULL,
		stderr TEXT,
		compile_output TEXT,
		status TEXT NOT NULL,
		memory TEXT,
		time TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT test_case_results_submission_id_fkey FOREIGN KEY (submission_id)
			REFERENCES submissions (id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_test_case_results_submission_id
		ON test_case_results (submission_id)`,

	`CREATE TABLE IF NOT EXISTS problem_solved (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		problem_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT problem_solved_user_id_problem_id_key UNIQUE (user_id, problem_id),
		CONSTRAINT problem_solved_user_id_fkey FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT problem_solved_problem_id_fkey FOREIGN KEY (problem_id)
			REFERENCES problems (id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		user_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT playlists_name_user_id_key UNIQUE (name, user_id),
		CONSTRAINT playlists_user_id_fkey FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS problems_in_playlists (
		id TEXT PRIMARY KEY,
		playlist_id TEXT NOT NULL,
		problem_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT problems_in_playlists_playlist_id_problem_id_key UNIQUE (playlist_id, problem_id),
		CONSTRAINT problems_in_playlists_playlist_id_fkey FOREIGN KEY (playlist_id)
			REFERENCES playlists (id) ON DELETE CASCADE,
		CONSTRAINT problems_in_playlists_problem_id_fkey FOREIGN KEY (problem_id)
			REFERENCES problems (id) ON DELETE CASCADE
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
