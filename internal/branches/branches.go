package branches

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// BranchInput creates or replaces a store branch.
type BranchInput struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Address      string  `json:"address" validate:"required,max=500"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	OpeningHours *string `json:"openingHours" validate:"omitempty,max=500"`
	MapURL       *string `json:"mapUrl" validate:"omitempty,url"`
	SortOrder    int     `json:"sortOrder" validate:"gte=0"`
	IsActive     *bool   `json:"isActive"`
}

// Service manages store branches.
type Service interface {
	List(ctx context.Context, activeOnly bool) ([]models.Branch, error)
	Get(ctx context.Context, id int64) (*models.Branch, error)
	Create(ctx context.Context, input BranchInput) (*models.Branch, error)
	Update(ctx context.Context, id int64, input BranchInput) (*models.Branch, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db *gorm.DB
}

// NewService builds the branch service directly over the DB; the package is
// small enough that a separate repository adds nothing.
func NewService(gdb *gorm.DB) (Service, error) {
	if gdb == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: gdb}, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]models.Branch, error) {
	query := s.db.WithContext(ctx).Order("sort_order ASC, id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var out []models.Branch
	if err := query.Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing branches")
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Branch, error) {
	var branch models.Branch
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading branch")
	}
	return &branch, nil
}

func (s *service) Create(ctx context.Context, input BranchInput) (*models.Branch, error) {
	branch := &models.Branch{
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Phone:        input.Phone,
		OpeningHours: input.OpeningHours,
		MapURL:       input.MapURL,
		SortOrder:    input.SortOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating branch")
	}
	return branch, nil
}

func (s *service) Update(ctx context.Context, id int64, input BranchInput) (*models.Branch, error) {
	branch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	branch.Name = strings.TrimSpace(input.Name)
	branch.Address = strings.TrimSpace(input.Address)
	branch.Phone = input.Phone
	branch.OpeningHours = input.OpeningHours
	branch.MapURL = input.MapURL
	branch.SortOrder = input.SortOrder
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Save(branch).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating branch")
	}
	return branch, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Branch{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting branch")
	}
	return nil
}
