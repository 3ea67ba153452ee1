package options

import "github.com/shopspring/decimal"

// GroupInput creates or replaces an option group.
type GroupInput struct {
	ProductID     *int64 `json:"productId" validate:"omitempty,gt=0"`
	Name          string `json:"name" validate:"required,max=200"`
	IsRequired    bool   `json:"isRequired"`
	SelectionType string `json:"selectionType" validate:"required"`
	MinSelect     int    `json:"minSelect" validate:"gte=0"`
	MaxSelect     int    `json:"maxSelect" validate:"gte=0"`
	SortOrder     int    `json:"sortOrder" validate:"gte=0"`
}

// OptionInput creates or replaces an option inside a group.
type OptionInput struct {
	Name             string          `json:"name" validate:"required,max=200"`
	PriceDelta       decimal.Decimal `json:"priceDelta"`
	ReplaceBasePrice bool            `json:"replaceBasePrice"`
	IsActive         *bool           `json:"isActive"`
	SortOrder        int             `json:"sortOrder" validate:"gte=0"`
}

// AssignInput attaches a group to a product, or detaches it when productId is
// null.
type AssignInput struct {
	ProductID *int64 `json:"productId" validate:"omitempty,gt=0"`
}
