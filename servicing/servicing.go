// Package servicing tracks vehicle maintenance jobs, from scheduling
// through completion.
package servicing

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

// Job status values.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Job is a single maintenance job for a vehicle.
type Job struct {
	database.BaseModel
	VehiclePlate string     `gorm:"index;not null" json:"vehiclePlate"`
	Type         string     `gorm:"not null" json:"type"`
	Workshop     string     `json:"workshop"`
	CostCents    int64      `json:"costCents"`
	Status       string     `gorm:"not null;default:scheduled" json:"status"`
	ScheduledAt  time.Time  `gorm:"index;not null" json:"scheduledAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}

var queryConfig = query.Config{
	AllowedSortFields: []string{"scheduled_at", "vehicle_plate", "status", "created_at"},
	DefaultSort:       "scheduled_at DESC",
	DateField:         "scheduled_at",
}

func validStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Service implements maintenance job operations over gorm.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, params query.Params) (*query.Result[Job], error) {
	result, err := query.ApplyToGorm[Job](s.db.WithContext(ctx), params, queryConfig)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := s.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("servicing job", id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &j, nil
}

func (s *Service) Create(ctx context.Context, j *Job) error {
	if j.Status == "" {
		j.Status = StatusScheduled
	}
	if !validStatus(j.Status) {
		return apperrors.InvalidInput("status", "unknown job status")
	}
	if err := s.db.WithContext(ctx).Create(j).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, changes *Job) (*Job, error) {
	if !validStatus(changes.Status) {
		return nil, apperrors.InvalidInput("status", "unknown job status")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.VehiclePlate = changes.VehiclePlate
	existing.Type = changes.Type
	existing.Workshop = changes.Workshop
	existing.CostCents = changes.CostCents
	existing.Status = changes.Status
	existing.ScheduledAt = changes.ScheduledAt
	existing.CompletedAt = changes.CompletedAt
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Job{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("servicing job", id.String())
	}
	return nil
}
