package domain

import "time"

type User struct {
	ID            string
	Username      string // lowercased, unique
	Email         string // lowercased, unique
	DisplayName   string
	Role          Role
	Active        bool
	EmailVerified bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identity is the authenticated view of a user attached to a request.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     Role
}

// Identity projects the user onto the fields carried by a session.
func (u User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
