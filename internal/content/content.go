package content

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

// PageInput replaces the content of a keyed page.
type PageInput struct {
	Title string `json:"title" validate:"required,max=300"`
	Body  string `json:"body" validate:"max=50000"`
}

// Service manages keyed site pages (about, terms, contact).
type Service interface {
	List(ctx context.Context) ([]models.Page, error)
	GetByKey(ctx context.Context, key string) (*models.Page, error)
	// Upsert creates the page on first write and replaces it afterwards.
	Upsert(ctx context.Context, key string, input PageInput) (*models.Page, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the content service.
func NewService(gdb *gorm.DB) (Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: gdb}, nil
}

func (s *service) List(ctx context.Context) ([]models.Page, error) {
	var pages []models.Page
	err := s.db.WithContext(ctx).Order("key ASC").Find(&pages).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing pages")
	}
	return pages, nil
}

func (s *service) GetByKey(ctx context.Context, key string) (*models.Page, error) {
	var page models.Page
	err := s.db.WithContext(ctx).Where("key = ?", strings.ToLower(key)).First(&page).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading page")
	}
	return &page, nil
}

func (s *service) Upsert(ctx context.Context, key string, input PageInput) (*models.Page, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !keyPattern.MatchString(key) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Page key must be lowercase letters, digits or dashes")
	}

	page, err := s.GetByKey(ctx, key)
	if err != nil {
		if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
		page = &models.Page{Key: key}
	}
	page.Title = strings.TrimSpace(input.Title)
	page.Body = input.Body

	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving page")
	}
	return page, nil
}
