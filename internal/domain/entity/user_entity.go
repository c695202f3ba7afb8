package entity

import (
	"time"
)

// AuthProvider tags how an account authenticates. Only local credential
// accounts are handled here; federated providers live in a separate flow.
type AuthProvider string

const (
	ProviderLocal AuthProvider = "local"
)

// RoleUser is the role granted to every registered account and required
// by the protected user endpoints.
const RoleUser = "USER"

// User is the aggregate root for the user domain
// Passwords are stored as bcrypt hashes in PasswordHash; the raw password
// is discarded right after hashing and must never appear in logs or
// responses.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Provider     AuthProvider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
