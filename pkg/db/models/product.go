package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry the storefront can price and sell.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	CategoryID  *int64          `gorm:"column:category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	ImageURL    *string         `gorm:"column:image_url"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0"`
	// OptionGroups carry a nullable ProductID so a group can exist unassigned;
	// unassigned groups are inert and never priced.
	OptionGroups []OptionGroup `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
