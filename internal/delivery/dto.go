package delivery

import "github.com/shopspring/decimal"

// ZoneInput creates or replaces a delivery zone.
type ZoneInput struct {
	City     string          `json:"city" validate:"required,max=120"`
	Fee      decimal.Decimal `json:"fee"`
	IsActive *bool           `json:"isActive"`
}
