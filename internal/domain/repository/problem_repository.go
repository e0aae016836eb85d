package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *model.Problem) error
	UpdateProblem(ctx context.Context, problem *model.Problem) error
	// DeleteProblem cascades to Submissions (and their TestCaseResults),
	// ProblemSolved rows and ProblemInPlaylist rows via DDL.
	DeleteProblem(ctx context.Context, id string) error
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error)
	ListProblems(ctx context.Context, limit, offset int, difficulty model.ProblemDifficulty, tags []string) ([]model.Problem, int, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

const problemColumns = `id, title, slug, description, difficulty, tags, user_id,
	examples, constraints, hints, editorial, testcases, code_snippets,
	reference_solutions, created_at, updated_at`

func (r *pgProblemRepository) CreateProblem(ctx context.Context, p *model.Problem) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.CreateProblem marshal tags: %w", err)
	}
	query := `INSERT INTO problems (id, title, slug, description, difficulty, tags, user_id,
	            examples, constraints, hints, editorial, testcases, code_snippets, reference_solutions)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.Difficulty, tags, p.UserID,
		blobOrEmpty(p.Examples, `{}`), p.Constraints, p.Hints, p.Editorial,
		blobOrEmpty(p.Testcases, `[]`), blobOrEmpty(p.CodeSnippets, `{}`),
		blobOrEmpty(p.ReferenceSolutions, `{}`),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgProblemRepository) UpdateProblem(ctx context.Context, p *model.Problem) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.UpdateProblem marshal tags: %w", err)
	}
	query := `UPDATE problems SET
	            title = $1, slug = $2, description = $3, difficulty = $4, tags = $5,
	            examples = $6, constraints = $7, hints = $8, editorial = $9,
	            testcases = $10, code_snippets = $11, reference_solutions = $12,
	            updated_at = now()
	          WHERE id = $13
	          RETURNING updated_at`
	err = r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.Difficulty, tags,
		blobOrEmpty(p.Examples, `{}`), p.Constraints, p.Hints, p.Editorial,
		blobOrEmpty(p.Testcases, `[]`), blobOrEmpty(p.CodeSnippets, `{}`),
		blobOrEmpty(p.ReferenceSolutions, `{}`), p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgProblemRepository.UpdateProblem: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgProblemRepository) DeleteProblem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.DeleteProblem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	return r.findOne(ctx, "id", id)
}

func (r *pgProblemRepository) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *pgProblemRepository) findOne(ctx context.Context, column, value string) (*model.Problem, error) {
	query := fmt.Sprintf(`SELECT %s FROM problems WHERE %s = $1`, problemColumns, column)
	p, err := scanProblem(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.findOne(%s): %w", column, err)
	}
	return p, nil
}

func (r *pgProblemRepository) ListProblems(ctx context.Context, limit, offset int, difficulty model.ProblemDifficulty, tags []string) ([]model.Problem, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", argID))
		args = append(args, difficulty)
		argID++
	}
	if len(tags) > 0 {
		// JSONB containment: every requested tag must be present.
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems marshal tags: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("tags @> $%d", argID))
		args = append(args, tagsJSON)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM problems` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM problems%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		problemColumns, whereClause, argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems rows.Err: %w", err)
	}
	return problems, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProblem(row rowScanner) (*model.Problem, error) {
	p := &model.Problem{}
	var tags []byte
	var examples, testcases, codeSnippets, referenceSolutions []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Difficulty, &tags, &p.UserID,
		&examples, &p.Constraints, &p.Hints, &p.Editorial, &testcases,
		&codeSnippets, &referenceSolutions, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	p.Examples = json.RawMessage(examples)
	p.Testcases = json.RawMessage(testcases)
	p.CodeSnippets = json.RawMessage(codeSnippets)
	p.ReferenceSolutions = json.RawMessage(referenceSolutions)
	return p, nil
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func blobOrEmpty(blob json.RawMessage, empty string) []byte {
	if len(blob) == 0 {
		return []byte(empty)
	}
	return []byte(blob)
}
