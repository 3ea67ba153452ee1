package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// EventInput creates or replaces a promotional event.
type EventInput struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Body        *string    `json:"body" validate:"omitempty,max=5000"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	IsPublished bool       `json:"isPublished"`
}

// Service manages promotional events.
type Service interface {
	// ListPublished returns events visible to the storefront right now.
	ListPublished(ctx context.Context, now time.Time) ([]models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, input EventInput) (*models.Event, error)
	Update(ctx context.Context, id int64, input EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db *gorm.DB
}

// NewService builds the events service.
func NewService(gdb *gorm.DB) (Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: gdb}, nil
}

func (s *service) ListPublished(ctx context.Context, now time.Time) ([]models.Event, error) {
	var out []models.Event
	err := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("starts_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing published events")
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing events")
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading event")
	}
	return &event, nil
}

func (s *service) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	if err := validateWindow(input); err != nil {
		return nil, err
	}
	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Body:        input.Body,
		ImageURL:    input.ImageURL,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsPublished: input.IsPublished,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating event")
	}
	return event, nil
}

func (s *service) Update(ctx context.Context, id int64, input EventInput) (*models.Event, error) {
	if err := validateWindow(input); err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Title = strings.TrimSpace(input.Title)
	event.Body = input.Body
	event.ImageURL = input.ImageURL
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	event.IsPublished = input.IsPublished
	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating event")
	}
	return event, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting event")
	}
	return nil
}

func validateWindow(input EventInput) error {
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Event cannot end before it starts")
	}
	return nil
}
