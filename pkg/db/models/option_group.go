package models

import (
	"time"

	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
)

// OptionGroup is a named set of choices attached to a product, e.g. "Size".
type OptionGroup struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID     *int64              `gorm:"column:product_id"`
	Name          string              `gorm:"column:name;not null"`
	IsRequired    bool                `gorm:"column:is_required;not null;default:false"`
	SelectionType enums.SelectionType `gorm:"column:selection_type;type:text;not null;default:'single'"`
	MinSelect     int                 `gorm:"column:min_select;not null;default:0"`
	MaxSelect     int                 `gorm:"column:max_select;not null;default:1"`
	SortOrder     int                 `gorm:"column:sort_order;not null;default:0"`
	Options       []Option            `gorm:"foreignKey:GroupID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
