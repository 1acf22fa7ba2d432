// Package trip manages vehicle trip records.
package trip

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

// Trip is a single vehicle journey between two locations.
type Trip struct {
	database.BaseModel

	BaseID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"baseId"`
	DriverID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"driverId"`
	VehiclePlate   string     `gorm:"not null;index" json:"vehiclePlate"`
	Origin         string     `gorm:"not null" json:"origin"`
	Destination    string     `gorm:"not null" json:"destination"`
	DepartureAt    time.Time  `gorm:"not null;index" json:"departureAt"`
	ArrivalAt      *time.Time `json:"arrivalAt"`
	PassengerCount int        `json:"passengerCount"`
	Notes          string     `json:"notes"`
}

// queryConfig drives the trip list endpoint: sortable columns and the
// departure-date range filter.
var queryConfig = query.Config{
	AllowedSortFields: []string{"departure_at", "vehicle_plate", "created_at"},
	DefaultSort:       "departure_at DESC",
	DateField:         "departure_at",
}

// Service provides trip CRUD operations.
type Service struct {
	db *gorm.DB
}

// NewService creates a trip service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns trips matching the given params, paginated.
func (s *Service) List(ctx context.Context, params query.Params) (*query.Result[Trip], error) {
	result, err := query.ApplyToGorm[Trip](s.db.WithContext(ctx).Model(&Trip{}), params, queryConfig)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}

// Get returns a trip by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var t Trip
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("trip", id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &t, nil
}

// Create stores a new trip.
func (s *Service) Create(ctx context.Context, t *Trip) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Update applies changes to an existing trip.
func (s *Service) Update(ctx context.Context, id uuid.UUID, changes *Trip) (*Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.BaseID = changes.BaseID
	t.DriverID = changes.DriverID
	t.VehiclePlate = changes.VehiclePlate
	t.Origin = changes.Origin
	t.Destination = changes.Destination
	t.DepartureAt = changes.DepartureAt
	t.ArrivalAt = changes.ArrivalAt
	t.PassengerCount = changes.PassengerCount
	t.Notes = changes.Notes
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return t, nil
}

// Delete removes a trip by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Trip{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("trip", id.String())
	}
	return nil
}
