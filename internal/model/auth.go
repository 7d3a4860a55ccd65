package model

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresIn int64          `json:"expiresIn"`
	Account   AccountSummary `json:"account"`
}

// AccountSummary is the public projection of a User. The password hash never
// appears in any response struct.
type AccountSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthUser is the resolved identity attached to a request after the auth
// middleware has validated the bearer token.
type AuthUser struct {
	ID       int64
	Username string
	Email    string
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Summary() AccountSummary {
	return AccountSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
