package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	UpdateSubmissionResult(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	ListSubmissionsForUserProblem(ctx context.Context, userID, problemID string, limit, offset int) ([]model.Submission, int, error)

	CreateTestCaseResults(ctx context.Context, tx *sql.Tx, results []model.TestCaseResult) error
	GetTestCaseResults(ctx context.Context, submissionID string) ([]model.TestCaseResult, error)

	MarkProblemSolved(ctx context.Context, tx *sql.Tx, solved *model.ProblemSolved) error
	ListSolvedProblems(ctx context.Context, userID string) ([]model.Problem, error)
	CountSolvedProblemsByUser(ctx context.Context, userID string) (int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `id, user_id, problem_id, source_code, language, stdin,
	stdout, stderr, compile_output, status, memory, time, created_at, updated_at`

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, problem_id, source_code, language, stdin, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	row := r.row(ctx, tx, query,
		sub.ID, sub.UserID, sub.ProblemID, []byte(sub.SourceCode), sub.Language, sub.Stdin, sub.Status)
	if err := row.Scan(&sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE id = $1`, submissionColumns)
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetSubmissionByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) UpdateSubmissionResult(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	query := `UPDATE submissions SET
	            stdout = $1, stderr = $2, compile_output = $3, status = $4,
	            memory = $5, time = $6, updated_at = now()
	          WHERE id = $7
	          RETURNING updated_at`
	row := r.row(ctx, tx, query,
		sub.Stdout, sub.Stderr, sub.CompileOutput, sub.Status, sub.Memory, sub.Time, sub.ID)
	if err := row.Scan(&sub.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgSubmissionRepository.UpdateSubmissionResult: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) ListSubmissionsForUserProblem(ctx context.Context, userID, problemID string, limit, offset int) ([]model.Submission, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM submissions WHERE user_id = $1 AND problem_id = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, problemID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListSubmissionsForUserProblem count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM submissions
	          WHERE user_id = $1 AND problem_id = $2
	          ORDER BY created_at DESC LIMIT $3 OFFSET $4`, submissionColumns)
	rows, err := r.db.QueryContext(ctx, query, userID, problemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListSubmissionsForUserProblem query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgSubmissionRepository.ListSubmissionsForUserProblem scan: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListSubmissionsForUserProblem rows.Err: %w", err)
	}
	return subs, total, nil
}

func (r *pgSubmissionRepository) CreateTestCaseResults(ctx context.Context, tx *sql.Tx, results []model.TestCaseResult) error {
	if len(results) == 0 {
		return nil
	}
	query := `INSERT INTO test_case_results
	            (id, submission_id, test_case, passed, stdout, expected, stderr, compile_output, status, memory, time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateTestCaseResults prepare: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		_, err := stmt.ExecContext(ctx,
			res.ID, res.SubmissionID, res.TestCase, res.Passed, res.Stdout,
			res.Expected, res.Stderr, res.CompileOutput, res.Status, res.Memory, res.Time)
		if err != nil {
			return fmt.Errorf("pgSubmissionRepository.CreateTestCaseResults exec for case %d: %w",
				res.TestCase, common.TranslateDBError(err))
		}
	}
	return nil
}

func (r *pgSubmissionRepository) GetTestCaseResults(ctx context.Context, submissionID string) ([]model.TestCaseResult, error) {
	// Served by idx_test_case_results_submission_id.
	query := `SELECT id, submission_id, test_case, passed, stdout, expected, stderr,
	            compile_output, status, memory, time, created_at, updated_at
	          FROM test_case_results WHERE submission_id = $1 ORDER BY test_case ASC`
	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.GetTestCaseResults query: %w", err)
	}
	defer rows.Close()

	results := []model.TestCaseResult{}
	for rows.Next() {
		var res model.TestCaseResult
		if err := rows.Scan(
			&res.ID, &res.SubmissionID, &res.TestCase, &res.Passed, &res.Stdout,
			&res.Expected, &res.Stderr, &res.CompileOutput, &res.Status,
			&res.Memory, &res.Time, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.GetTestCaseResults scan: %w", err)
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.GetTestCaseResults rows.Err: %w", err)
	}
	return results, nil
}

// MarkProblemSolved is an upsert: re-solving the same problem keeps the single
// existing row, per the (user_id, problem_id) unique constraint.
func (r *pgSubmissionRepository) MarkProblemSolved(ctx context.Context, tx *sql.Tx, solved *model.ProblemSolved) error {
	query := `INSERT INTO problem_solved (id, user_id, problem_id)
	          VALUES ($1, $2, $3)
	          ON CONFLICT ON CONSTRAINT problem_solved_user_id_problem_id_key DO NOTHING`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, solved.ID, solved.UserID, solved.ProblemID)
	} else {
		_, err = r.db.ExecContext(ctx, query, solved.ID, solved.UserID, solved.ProblemID)
	}
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.MarkProblemSolved: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgSubmissionRepository) ListSolvedProblems(ctx context.Context, userID string) ([]model.Problem, error) {
	query := fmt.Sprintf(`SELECT %s FROM problems p
	          JOIN problem_solved ps ON ps.problem_id = p.id
	          WHERE ps.user_id = $1 ORDER BY ps.created_at DESC`,
		prefixColumns("p", problemColumns))
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblems rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgSubmissionRepository) CountSolvedProblemsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM problem_solved WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountSolvedProblemsByUser: %w", err)
	}
	return count, nil
}

func (r *pgSubmissionRepository) row(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return r.db.QueryRowContext(ctx, query, args...)
}

func scanSubmission(row rowScanner) (*model.Submission, error) {
	sub := &model.Submission{}
	var sourceCode []byte
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID, &sourceCode, &sub.Language, &sub.Stdin,
		&sub.Stdout, &sub.Stderr, &sub.CompileOutput, &sub.Status,
		&sub.Memory, &sub.Time, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.SourceCode = sourceCode
	return sub, nil
}
