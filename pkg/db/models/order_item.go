package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sukkarlab/sweetshop-backend/pkg/types"
)

// OrderItem stores the immutable snapshot of one priced cart line. Catalog
// edits after the fact never touch these rows.
type OrderItem struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"column:order_id;not null"`
	ProductID   *int64 `gorm:"column:product_id"`
	ProductName string `gorm:"column:product_name;not null"`
	Category    string `gorm:"column:category;not null;default:''"`
	Quantity    int    `gorm:"column:quantity;not null"`
	// BasePrice is the product's base price at pricing time; UnitPrice is the
	// final per-unit price after option deltas and any base-price override.
	BasePrice       decimal.Decimal       `gorm:"column:base_price;type:numeric(10,2);not null"`
	UnitPrice       decimal.Decimal       `gorm:"column:unit_price;type:numeric(10,2);not null"`
	SelectedOptions types.SelectedOptions `gorm:"column:selected_options;type:jsonb;serializer:json"`
	Notes           *string               `gorm:"column:notes"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
