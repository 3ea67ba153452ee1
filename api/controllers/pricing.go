package controllers

import (
	"net/http"

	"github.com/sukkarlab/sweetshop-backend/api/responses"
	"github.com/sukkarlab/sweetshop-backend/api/validators"
	"github.com/sukkarlab/sweetshop-backend/internal/pricing"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
)

type calculatePriceRequest struct {
	ProductID       int64                 `json:"productId" validate:"required,gt=0"`
	SelectedOptions []selectedOptionIDReq `json:"selectedOptions" validate:"dive"`
}

type selectedOptionIDReq struct {
	OptionID int64 `json:"optionId" validate:"required,gt=0"`
}

type selectedOptionView struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	ReplaceBasePrice bool    `json:"replaceBasePrice"`
}

type quoteView struct {
	ProductID       int64                `json:"productId"`
	ProductName     string               `json:"productName"`
	BasePrice       float64              `json:"basePrice"`
	FinalPrice      float64              `json:"finalPrice"`
	SelectedOptions []selectedOptionView `json:"selectedOptions"`
}

// CalculatePrice re-derives the price of one product with a selection. The
// storefront calls it while the customer configures a cart line.
func CalculatePrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload calculatePriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		optionIDs := make([]int64, 0, len(payload.SelectedOptions))
		for _, sel := range payload.SelectedOptions {
			optionIDs = append(optionIDs, sel.OptionID)
		}

		quote, err := svc.Calculate(r.Context(), payload.ProductID, optionIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toQuoteView(quote))
	}
}

func toQuoteView(quote *pricing.Quote) quoteView {
	view := quoteView{
		ProductID:       quote.ProductID,
		ProductName:     quote.ProductName,
		BasePrice:       quote.BasePrice.InexactFloat64(),
		FinalPrice:      quote.FinalPrice.InexactFloat64(),
		SelectedOptions: make([]selectedOptionView, 0, len(quote.SelectedOptions)),
	}
	for _, opt := range quote.SelectedOptions {
		view.SelectedOptions = append(view.SelectedOptions, selectedOptionView{
			ID:               opt.ID,
			Name:             opt.Name,
			Price:            opt.Price.InexactFloat64(),
			ReplaceBasePrice: opt.ReplaceBasePrice,
		})
	}
	return view
}
