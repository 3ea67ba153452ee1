package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
)

// Order is the header row created atomically with its items at checkout.
type Order struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName   string            `gorm:"column:customer_name;not null"`
	Phone          string            `gorm:"column:phone;not null"`
	SecondaryPhone *string           `gorm:"column:secondary_phone"`
	Address        string            `gorm:"column:address;not null"`
	City           string            `gorm:"column:city;not null"`
	DeliveryFee    decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentMethod  string            `gorm:"column:payment_method;not null"`
	Notes          *string           `gorm:"column:notes"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
