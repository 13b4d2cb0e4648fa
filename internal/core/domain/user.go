package domain

import "time"

// User models a portal account. LastLogin is nil until the first
// successful login.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Roles         []Role     `json:"roles"`
	EmailVerified bool       `json:"isEmailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Principal is the authenticated identity attached to a request. It is
// reconstructed from the verified token on every request and never
// persisted server-side.
type Principal struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Roles  []Role `json:"roles"`
}
