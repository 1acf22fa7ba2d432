// Package base manages organizational base units: the depots users and
// trips are assigned to.
package base

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetgrid/fleetgrid/database"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Base is an organizational unit.
type Base struct {
	database.BaseModel

	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Address string `json:"address"`
}

// Service provides base CRUD operations.
type Service struct {
	db *gorm.DB
}

// NewService creates a base service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all bases ordered by name.
func (s *Service) List(ctx context.Context) ([]Base, error) {
	var bases []Base
	if err := s.db.WithContext(ctx).Order("name").Find(&bases).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return bases, nil
}

// Get returns a base by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Base, error) {
	var b Base
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("base", id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &b, nil
}

// Create stores a new base.
func (s *Service) Create(ctx context.Context, b *Base) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Update applies changes to an existing base.
func (s *Service) Update(ctx context.Context, id uuid.UUID, changes *Base) (*Base, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = changes.Name
	b.Address = changes.Address
	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return b, nil
}

// Delete removes a base by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Base{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("base", id.String())
	}
	return nil
}
