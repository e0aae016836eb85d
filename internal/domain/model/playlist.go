package model

import "time"

type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Problems []Problem `json:"problems,omitempty"`
}

type ProblemInPlaylist struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlist_id"`
	ProblemID  string    `json:"problem_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
