package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
)

type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error)
	ListPlaylistsByUser(ctx context.Context, userID string) ([]model.Playlist, error)
	// DeletePlaylist cascades to ProblemInPlaylist rows; the problems
	// themselves are untouched.
	DeletePlaylist(ctx context.Context, id string) error

	AddProblemToPlaylist(ctx context.Context, entry *model.ProblemInPlaylist) error
	RemoveProblemFromPlaylist(ctx context.Context, playlistID, problemID string) error
	GetPlaylistProblems(ctx context.Context, playlistID string) ([]model.Problem, error)
}

type pgPlaylistRepository struct {
	db *sql.DB
}

func NewPgPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &pgPlaylistRepository{db: db}
}

func (r *pgPlaylistRepository) CreatePlaylist(ctx context.Context, p *model.Playlist) error {
	query := `INSERT INTO playlists (id, name, description, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Description, p.UserID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPlaylistRepository.CreatePlaylist: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	query := `SELECT id, name, description, user_id, created_at, updated_at
	          FROM playlists WHERE id = $1`
	p := &model.Playlist{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPlaylistRepository.GetPlaylistByID: %w", err)
	}
	return p, nil
}

func (r *pgPlaylistRepository) ListPlaylistsByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	query := `SELECT id, name, description, user_id, created_at, updated_at
	          FROM playlists WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgPlaylistRepository.ListPlaylistsByUser query: %w", err)
	}
	defer rows.Close()

	playlists := []model.Playlist{}
	for rows.Next() {
		var p model.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgPlaylistRepository.ListPlaylistsByUser scan: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPlaylistRepository.ListPlaylistsByUser rows.Err: %w", err)
	}
	return playlists, nil
}

func (r *pgPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPlaylistRepository.DeletePlaylist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPlaylistRepository) AddProblemToPlaylist(ctx context.Context, entry *model.ProblemInPlaylist) error {
	query := `INSERT INTO problems_in_playlists (id, playlist_id, problem_id)
	          VALUES ($1, $2, $3)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, entry.ID, entry.PlaylistID, entry.ProblemID).
		Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPlaylistRepository.AddProblemToPlaylist: %w", common.TranslateDBError(err))
	}
	return nil
}

func (r *pgPlaylistRepository) RemoveProblemFromPlaylist(ctx context.Context, playlistID, problemID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM problems_in_playlists WHERE playlist_id = $1 AND problem_id = $2`,
		playlistID, problemID)
	if err != nil {
		return fmt.Errorf("pgPlaylistRepository.RemoveProblemFromPlaylist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPlaylistRepository) GetPlaylistProblems(ctx context.Context, playlistID string) ([]model.Problem, error) {
	query := fmt.Sprintf(`SELECT %s FROM problems p
	          JOIN problems_in_playlists pip ON pip.problem_id = p.id
	          WHERE pip.playlist_id = $1 ORDER BY pip.created_at ASC`,
		prefixColumns("p", problemColumns))
	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("pgPlaylistRepository.GetPlaylistProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("pgPlaylistRepository.GetPlaylistProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPlaylistRepository.GetPlaylistProblems rows.Err: %w", err)
	}
	return problems, nil
}
