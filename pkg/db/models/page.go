package models

import "time"

// Page is a keyed block of site content (about, terms, contact).
type Page struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Key       string    `gorm:"column:key;not null;uniqueIndex"`
	Title     string    `gorm:"column:title;not null"`
	Body      string    `gorm:"column:body;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
