package service

import (
	"context"
	"fmt"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"

	"github.com/google/uuid"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	problemRepo  repository.ProblemRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, problemRepo repository.ProblemRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, problemRepo: problemRepo}
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, userID string, req CreatePlaylistRequest) (*model.Playlist, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("playlist name is required: %w", common.ErrBadRequest)
	}

	playlist := &model.Playlist{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	// A duplicate name for the same user fails on playlists_name_user_id_key.
	if err := s.playlistRepo.CreatePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) ListPlaylists(ctx context.Context, userID string) ([]model.Playlist, error) {
	return s.playlistRepo.ListPlaylistsByUser(ctx, userID)
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, userID, playlistID string) (*model.Playlist, error) {
	playlist, err := s.getOwned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}
	problems, err := s.playlistRepo.GetPlaylistProblems(ctx, playlistID)
	if err != nil {
		return nil, common.Errorf("failed to load playlist problems: %w", err)
	}
	for i := range problems {
		problems[i].Testcases = nil
		problems[i].ReferenceSolutions = nil
	}
	playlist.Problems = problems
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	if _, err := s.getOwned(ctx, userID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.DeletePlaylist(ctx, playlistID)
}

func (s *PlaylistService) AddProblem(ctx context.Context, userID, playlistID, problemID string) (*model.ProblemInPlaylist, error) {
	if _, err := s.getOwned(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	entry := &model.ProblemInPlaylist{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		ProblemID:  problemID,
	}
	// Duplicate adds fail on problems_in_playlists_playlist_id_problem_id_key;
	// an unknown problem id fails on the FK.
	if err := s.playlistRepo.AddProblemToPlaylist(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add problem to playlist: %w", err)
	}
	return entry, nil
}

func (s *PlaylistService) RemoveProblem(ctx context.Context, userID, playlistID, problemID string) error {
	if _, err := s.getOwned(ctx, userID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveProblemFromPlaylist(ctx, playlistID, problemID)
}

func (s *PlaylistService) getOwned(ctx context.Context, userID, playlistID string) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != userID {
		return nil, common.ErrForbidden
	}
	return playlist, nil
}
