package orders

import "github.com/shopspring/decimal"

// SelectedOptionInput is one chosen option id on a cart line.
type SelectedOptionInput struct {
	OptionID int64 `json:"optionId" validate:"required,gt=0"`
}

// OrderItemInput is one cart line as submitted by the storefront. Any price
// fields a client might attach are not modeled here on purpose: prices are
// always re-derived server-side.
type OrderItemInput struct {
	ProductID       int64                 `json:"productId" validate:"required,gt=0"`
	Category        string                `json:"category" validate:"max=120"`
	Quantity        int                   `json:"quantity" validate:"required,gt=0"`
	SelectedOptions []SelectedOptionInput `json:"selectedOptions" validate:"dive"`
	Notes           *string               `json:"notes"`
}

// CreateOrderInput is the storefront checkout payload.
type CreateOrderInput struct {
	CustomerName   string           `json:"customerName" validate:"required,max=200"`
	Phone          string           `json:"phone" validate:"required,max=30"`
	SecondaryPhone *string          `json:"secondaryPhone" validate:"omitempty,max=30"`
	Address        string           `json:"address" validate:"required,max=500"`
	City           string           `json:"city" validate:"required,max=120"`
	DeliveryFee    decimal.Decimal  `json:"deliveryFee"`
	PaymentMethod  string           `json:"paymentMethod" validate:"required,max=60"`
	Notes          *string          `json:"notes"`
	Items          []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderResult is what checkout returns to the storefront.
type CreateOrderResult struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// UpdateStatusInput moves an order through its lifecycle.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
