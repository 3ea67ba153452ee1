package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/types"
)

// Quote is the immutable result of pricing one product with a selection.
// Order assembly copies these values into order-item snapshots verbatim.
type Quote struct {
	ProductID       int64
	ProductName     string
	BasePrice       decimal.Decimal
	FinalPrice      decimal.Decimal
	SelectedOptions types.SelectedOptions
}

// Service prices a product against a set of selected option ids.
type Service interface {
	Calculate(ctx context.Context, productID int64, selectedOptionIDs []int64) (*Quote, error)
}

type service struct {
	repo Repository
}

// NewService builds the pricing engine.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo}, nil
}

// Calculate re-derives the authoritative price for one line. It never trusts
// caller-supplied prices and never caches: every call re-reads catalog state.
//
// Selected ids that are unknown, inactive, or attached to another product's
// groups are silently dropped; duplicates collapse to a single selection.
func (s *service) Calculate(ctx context.Context, productID int64, selectedOptionIDs []int64) (*Quote, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	groups, err := s.repo.FindGroupsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading option groups")
	}

	selected, err := s.repo.FindSelectedOptions(ctx, productID, dedupe(selectedOptionIDs))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading selected options")
	}

	countByGroup := make(map[int64]int, len(groups))
	for _, opt := range selected {
		countByGroup[opt.GroupID]++
	}

	// First violation wins; groups are checked in sort order.
	for _, group := range groups {
		count := countByGroup[group.ID]
		switch {
		case group.IsRequired && count == 0:
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Required option missing in group %s", group.Name)
		case group.SelectionType == enums.SelectionTypeSingle && count > 1:
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Only one option allowed in group %s", group.Name)
		case count < group.MinSelect:
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Minimum selection not met in group %s", group.Name)
		case count > group.MaxSelect:
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Maximum selection exceeded in group %s", group.Name)
		}
	}

	final := product.BasePrice
	for _, opt := range selected {
		// A replace flag anywhere in the selection zeroes the base price for
		// the whole line. Every delta still counts, including the replacing
		// option's own.
		if opt.ReplaceBasePrice {
			final = decimal.Zero
			break
		}
	}
	snapshots := make(types.SelectedOptions, 0, len(selected))
	for _, opt := range selected {
		final = final.Add(opt.PriceDelta)
		snapshots = append(snapshots, types.SelectedOption{
			ID:               opt.ID,
			Name:             opt.Name,
			Price:            opt.PriceDelta,
			ReplaceBasePrice: opt.ReplaceBasePrice,
		})
	}

	return &Quote{
		ProductID:       product.ID,
		ProductName:     product.Name,
		BasePrice:       product.BasePrice,
		FinalPrice:      final,
		SelectedOptions: snapshots,
	}, nil
}

func dedupe(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
