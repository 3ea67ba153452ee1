package options

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
)

// Repository persists option groups and their options.
type Repository interface {
	ListGroups(ctx context.Context, productID *int64) ([]models.OptionGroup, error)
	FindGroupByID(ctx context.Context, id int64) (*models.OptionGroup, error)
	CreateGroup(ctx context.Context, group *models.OptionGroup) error
	UpdateGroup(ctx context.Context, group *models.OptionGroup) error
	DeleteGroup(ctx context.Context, id int64) error

	FindOptionByID(ctx context.Context, id int64) (*models.Option, error)
	CreateOption(ctx context.Context, option *models.Option) error
	UpdateOption(ctx context.Context, option *models.Option) error
	DeleteOption(ctx context.Context, id int64) error

	ProductExists(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an options repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListGroups(ctx context.Context, productID *int64) ([]models.OptionGroup, error) {
	query := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("sort_order ASC, id ASC")
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	var groups []models.OptionGroup
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) FindGroupByID(ctx context.Context, id int64) (*models.OptionGroup, error) {
	var group models.OptionGroup
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) CreateGroup(ctx context.Context, group *models.OptionGroup) error {
	return r.db.WithContext(ctx).
		Omit("Options").
		Create(group).Error
}

func (r *repository) UpdateGroup(ctx context.Context, group *models.OptionGroup) error {
	return r.db.WithContext(ctx).
		Omit("Options").
		Save(group).Error
}

func (r *repository) DeleteGroup(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.OptionGroup{}).Error
	})
}

func (r *repository) FindOptionByID(ctx context.Context, id int64) (*models.Option, error) {
	var option models.Option
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *repository) CreateOption(ctx context.Context, option *models.Option) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *repository) UpdateOption(ctx context.Context, option *models.Option) error {
	return r.db.WithContext(ctx).Save(option).Error
}

func (r *repository) DeleteOption(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Option{}).Error
}

func (r *repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	err := r.db.WithContext(ctx).
		Select("id").
		Where("id = ?", id).
		First(&models.Product{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
