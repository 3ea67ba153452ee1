package catalog

import "github.com/shopspring/decimal"

// CategoryInput creates or replaces a category.
type CategoryInput struct {
	Name      string  `json:"name" validate:"required,max=200"`
	ImageURL  *string `json:"imageUrl" validate:"omitempty,url"`
	SortOrder int     `json:"sortOrder" validate:"gte=0"`
	IsActive  *bool   `json:"isActive"`
}

// ProductInput creates or replaces a product.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	CategoryID  *int64          `json:"categoryId" validate:"omitempty,gt=0"`
	ImageURL    *string         `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable *bool           `json:"isAvailable"`
	SortOrder   int             `json:"sortOrder" validate:"gte=0"`
}

// ProductFilter narrows the admin product listing.
type ProductFilter struct {
	CategoryID    *int64
	AvailableOnly bool
}
