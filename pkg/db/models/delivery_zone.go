package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone maps a city to its delivery fee.
type DeliveryZone struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	City      string          `gorm:"column:city;not null;uniqueIndex"`
	Fee       decimal.Decimal `gorm:"column:fee;type:numeric(10,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
