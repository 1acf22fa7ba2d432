// Package user defines the user model and the directory that resolves and
// provisions accounts for the authentication core.
package user

import (
	"github.com/google/uuid"

	"github.com/fleetgrid/fleetgrid/database"
)

// Provider tags how an account authenticates.
type Provider string

const (
	// ProviderLocal marks accounts with a locally stored password hash.
	ProviderLocal Provider = "local"

	// ProviderMicrosoft marks accounts provisioned through Azure AD SSO.
	ProviderMicrosoft Provider = "microsoft"
)

// User is an identity record. SSO-only accounts carry no password hash.
// Deleted is a soft-delete flag; records are never removed physically.
type User struct {
	database.BaseModel

	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash *string   `gorm:"column:password" json:"-"`
	Provider     Provider  `gorm:"not null;default:local" json:"-"`
	BaseID       *uuid.UUID `gorm:"type:uuid;index" json:"baseId"`
	Deleted      bool      `gorm:"not null;default:false" json:"deleted"`
}

// Principal is the authenticated user's exposed identity: the user record
// with credential fields (password hash, provider) stripped.
type Principal struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	BaseID    *uuid.UUID `json:"baseId"`
	Deleted   bool       `json:"deleted"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// Principal returns the user's exposed identity.
func (u *User) Principal() Principal {
	return Principal{
		ID:        u.ID,
		Username:  u.Username,
		BaseID:    u.BaseID,
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}
