package pricing

import (
	"context"

	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
)

// Repository exposes the catalog reads needed to price one product.
type Repository interface {
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	// FindGroupsByProduct returns the option groups assigned to the product in
	// validation order. Groups with a NULL product_id never match.
	FindGroupsByProduct(ctx context.Context, productID int64) ([]models.OptionGroup, error)
	// FindSelectedOptions returns the subset of optionIDs that are active and
	// belong to one of the product's groups. Unknown, inactive and
	// foreign-product options simply don't come back.
	FindSelectedOptions(ctx context.Context, productID int64, optionIDs []int64) ([]models.Option, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindGroupsByProduct(ctx context.Context, productID int64) ([]models.OptionGroup, error) {
	var groups []models.OptionGroup
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) FindSelectedOptions(ctx context.Context, productID int64, optionIDs []int64) ([]models.Option, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	var options []models.Option
	err := r.db.WithContext(ctx).
		Joins("JOIN option_groups ON option_groups.id = options.group_id AND option_groups.product_id = ?", productID).
		Where("options.id IN ?", optionIDs).
		Where("options.is_active = ?", true).
		Order("options.sort_order ASC, options.id ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
