package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	ID           int
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin is nil-safe so callers can ask it of an anonymous principal.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Post struct {
	ID        int
	AuthorID  int
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
	Date      string // display string, e.g. "August 30, 2026"
	CreatedAt time.Time
}

type Comment struct {
	ID         int
	PostID     int
	AuthorID   int
	AuthorName string
	Body       string
	CreatedAt  time.Time
}
