package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Directory resolves and provisions user accounts. It is the only mutation
// point for users in the authentication core.
type Directory interface {
	// FindByUsername looks up a user by exact username. Local usernames are
	// matched case-sensitively. A missing user is (nil, nil), not an error,
	// so callers can collapse it with other failure causes.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindOrCreateBySSOEmail upserts a user keyed by lower-cased email.
	// First SSO login creates the account with provider "microsoft" and no
	// password hash; repeat calls return the existing record unmodified.
	FindOrCreateBySSOEmail(ctx context.Context, email string) (*User, error)
}

// GormDirectory implements Directory on the GORM-backed users table.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a directory over the given database handle.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &u, nil
}

func (d *GormDirectory) FindOrCreateBySSOEmail(ctx context.Context, email string) (*User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, apperrors.InvalidInput("email", "email must not be empty")
	}

	var u User
	// FirstOrCreate under the username unique index: concurrent first logins
	// for the same email race on the insert and the loser reads the winner's row.
	err := d.db.WithContext(ctx).
		Where(User{Username: normalized}).
		Attrs(User{Provider: ProviderMicrosoft}).
		FirstOrCreate(&u).Error
	if err != nil {
		var existing User
		if findErr := d.db.WithContext(ctx).Where("username = ?", normalized).First(&existing).Error; findErr == nil {
			return &existing, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &u, nil
}
