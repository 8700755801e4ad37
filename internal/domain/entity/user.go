// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender recorded at registration.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether the value is one of the known gender labels.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}

	return false
}

// User is an account in the system. Email is the login identifier and is unique.
// PasswordHash holds the bcrypt hash of the account password; it never leaves
// the persistence and usecase layers.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	Gender       Gender
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsFamily     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken represents a long-lived, authorized session.
// Only a SHA-256 hash of the raw token is stored for comparison.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
