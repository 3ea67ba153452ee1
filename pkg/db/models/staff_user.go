package models

import (
	"time"

	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
)

// StaffUser is a back-office account.
type StaffUser struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string          `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Name         string          `gorm:"column:name;not null"`
	Role         enums.StaffRole `gorm:"column:role;type:text;not null;default:'manager'"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
