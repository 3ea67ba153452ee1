package delivery

import (
	"context"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
)

// Repository persists delivery zones.
type Repository interface {
	List(ctx context.Context) ([]models.DeliveryZone, error)
	FindByID(ctx context.Context, id int64) (*models.DeliveryZone, error)
	// FindActiveByCity matches case-insensitively on the city name.
	FindActiveByCity(ctx context.Context, city string) (*models.DeliveryZone, error)
	Create(ctx context.Context, zone *models.DeliveryZone) error
	Update(ctx context.Context, zone *models.DeliveryZone) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a delivery repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	err := r.db.WithContext(ctx).
		Order("city ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *repository) FindActiveByCity(ctx context.Context, city string) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = LOWER(?)", city).
		Where("is_active = ?", true).
		First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *repository) Create(ctx context.Context, zone *models.DeliveryZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *repository) Update(ctx context.Context, zone *models.DeliveryZone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DeliveryZone{}).Error
}
