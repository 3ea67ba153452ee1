package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Option is one selectable choice within an option group.
type Option struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	GroupID int64  `gorm:"column:group_id;not null"`
	Name    string `gorm:"column:name;not null"`
	// PriceDelta is added to the line price when the option is selected.
	PriceDelta decimal.Decimal `gorm:"column:price_delta;type:numeric(10,2);not null;default:0"`
	// ReplaceBasePrice zeroes the product's base price for the whole line when
	// this option is present anywhere in the selection.
	ReplaceBasePrice bool      `gorm:"column:replace_base_price;not null;default:false"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	SortOrder        int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
