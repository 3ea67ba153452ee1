package types

import "github.com/shopspring/decimal"

// SelectedOption is the snapshot of one chosen option as priced at order time.
// It is serialized into the order line item so later catalog edits cannot
// change what the customer was charged for.
type SelectedOption struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	ReplaceBasePrice bool            `json:"replace_base_price"`
}

// SelectedOptions is stored as a jsonb column via gorm's json serializer.
type SelectedOptions []SelectedOption
