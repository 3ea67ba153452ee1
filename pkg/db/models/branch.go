package models

import "time"

// Branch is a physical store location shown on the storefront.
type Branch struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null"`
	Address      string    `gorm:"column:address;not null"`
	Phone        *string   `gorm:"column:phone"`
	OpeningHours *string   `gorm:"column:opening_hours"`
	MapURL       *string   `gorm:"column:map_url"`
	SortOrder    int       `gorm:"column:sort_order;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
