package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Email     string    `json:"email"`
	Image     *string   `json:"image,omitempty"`
	Role      UserRole  `json:"role"`
	Password  string    `json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
