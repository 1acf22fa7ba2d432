// Package checkinout records vehicles being taken out of and returned
// to a base, including odometer and fuel readings at each event.
package checkinout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetgrid/fleetgrid/database"
	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Direction of a vehicle movement relative to the base.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Event is a single check-in or check-out record.
type Event struct {
	database.BaseModel
	VehiclePlate string    `gorm:"index;not null" json:"vehiclePlate"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	Direction    string    `gorm:"not null" json:"direction"`
	OdometerKm   int       `json:"odometerKm"`
	FuelLevel    int       `json:"fuelLevel"`
	Remarks      string    `json:"remarks"`
	OccurredAt   time.Time `gorm:"index;not null" json:"occurredAt"`
}

var queryConfig = query.Config{
	AllowedSortFields: []string{"occurred_at", "vehicle_plate", "created_at"},
	DefaultSort:       "occurred_at DESC",
	DateField:         "occurred_at",
}

// Service implements check-in/check-out operations over gorm.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, params query.Params) (*query.Result[Event], error) {
	result, err := query.ApplyToGorm[Event](s.db.WithContext(ctx), params, queryConfig)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("check event", id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &e, nil
}

func (s *Service) Create(ctx context.Context, e *Event) error {
	if e.Direction != DirectionIn && e.Direction != DirectionOut {
		return apperrors.InvalidInput("direction", "must be \"in\" or \"out\"")
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, changes *Event) (*Event, error) {
	if changes.Direction != DirectionIn && changes.Direction != DirectionOut {
		return nil, apperrors.InvalidInput("direction", "must be \"in\" or \"out\"")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.VehiclePlate = changes.VehiclePlate
	existing.UserID = changes.UserID
	existing.Direction = changes.Direction
	existing.OdometerKm = changes.OdometerKm
	existing.FuelLevel = changes.FuelLevel
	existing.Remarks = changes.Remarks
	existing.OccurredAt = changes.OccurredAt
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("check event", id.String())
	}
	return nil
}
