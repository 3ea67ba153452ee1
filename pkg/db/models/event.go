package models

import "time"

// Event is a promotional announcement shown on the storefront.
type Event struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string     `gorm:"column:title;not null"`
	Body        *string    `gorm:"column:body"`
	ImageURL    *string    `gorm:"column:image_url"`
	StartsAt    *time.Time `gorm:"column:starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
