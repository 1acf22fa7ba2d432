// Package quiz manages driver-safety quizzes and their questions.
// Questions are owned by their quiz and replaced wholesale on update.
package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetgrid/fleetgrid/database"
	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Quiz is a set of questions drivers answer before eligibility checks.
type Quiz struct {
	database.BaseModel
	Title     string     `gorm:"not null" json:"title"`
	Active    bool       `json:"active"`
	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions"`
}

// Question belongs to exactly one quiz.
type Question struct {
	database.BaseModel
	QuizID       uuid.UUID `gorm:"type:uuid;index;not null" json:"quizId"`
	Text         string    `gorm:"not null" json:"text"`
	Choices      []string  `gorm:"serializer:json" json:"choices"`
	CorrectIndex int       `json:"correctIndex"`
}

var queryConfig = query.Config{
	AllowedSortFields: []string{"title", "created_at"},
	DefaultSort:       "created_at DESC",
	DateField:         "created_at",
}

// Service implements quiz operations over gorm.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, params query.Params) (*query.Result[Quiz], error) {
	result, err := query.ApplyToGorm[Quiz](s.db.WithContext(ctx).Preload("Questions"), params, queryConfig)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var q Quiz
	err := s.db.WithContext(ctx).Preload("Questions").First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("quiz", id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &q, nil
}

func (s *Service) Create(ctx context.Context, q *Quiz) error {
	if err := validateQuestions(q.Questions); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Update replaces the quiz fields and its full question set in one
// transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, changes *Quiz) (*Quiz, error) {
	if err := validateQuestions(changes.Questions); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing.Title = changes.Title
		existing.Active = changes.Active
		if err := tx.Model(existing).Select("title", "active").Updates(existing).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		for i := range changes.Questions {
			changes.Questions[i].QuizID = id
		}
		if len(changes.Questions) > 0 {
			if err := tx.Create(&changes.Questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	existing.Questions = changes.Questions
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Quiz{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("quiz", id.String())
	}
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func validateQuestions(questions []Question) error {
	for _, q := range questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return apperrors.InvalidInput("correctIndex", "must point at one of the choices")
		}
	}
	return nil
}
