package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/sukkarlab/sweetshop-backend/api/responses"
	"github.com/sukkarlab/sweetshop-backend/api/validators"
	"github.com/sukkarlab/sweetshop-backend/internal/orders"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
)

type orderItemAdminView struct {
	ID              int64                `json:"id"`
	ProductID       *int64               `json:"productId"`
	ProductName     string               `json:"productName"`
	Category        string               `json:"category"`
	Quantity        int                  `json:"quantity"`
	BasePrice       float64              `json:"basePrice"`
	UnitPrice       float64              `json:"unitPrice"`
	SelectedOptions []selectedOptionView `json:"selectedOptions"`
	Notes           *string              `json:"notes"`
}

type orderAdminView struct {
	ID             int64                `json:"id"`
	CustomerName   string               `json:"customerName"`
	Phone          string               `json:"phone"`
	SecondaryPhone *string              `json:"secondaryPhone"`
	Address        string               `json:"address"`
	City           string               `json:"city"`
	DeliveryFee    float64              `json:"deliveryFee"`
	TotalAmount    float64              `json:"totalAmount"`
	PaymentMethod  string               `json:"paymentMethod"`
	Notes          *string              `json:"notes"`
	Status         string               `json:"status"`
	Items          []orderItemAdminView `json:"items"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// AdminListOrders returns orders with their nested snapshot items, newest
// first, optionally filtered by status.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := orders.ListFilter{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:  limit,
			Offset: offset,
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]orderAdminView, 0, len(list))
		for i := range list {
			views = append(views, toOrderAdminView(&list[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// AdminGetOrder returns one order with its items.
func AdminGetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderAdminView(order))
	}
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func AdminUpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orders.UpdateStatusInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithOrderID(r.Context(), itoa(order.ID))
			ctx = logg.WithField(ctx, "status", string(order.Status))
			logg.Info(ctx, "order.status_updated")
		}

		responses.WriteSuccess(w, toOrderAdminView(order))
	}
}

func toOrderAdminView(order *models.Order) orderAdminView {
	view := orderAdminView{
		ID:             order.ID,
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		SecondaryPhone: order.SecondaryPhone,
		Address:        order.Address,
		City:           order.City,
		DeliveryFee:    order.DeliveryFee.InexactFloat64(),
		TotalAmount:    order.TotalAmount.InexactFloat64(),
		PaymentMethod:  order.PaymentMethod,
		Notes:          order.Notes,
		Status:         string(order.Status),
		Items:          make([]orderItemAdminView, 0, len(order.Items)),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for _, item := range order.Items {
		itemView := orderItemAdminView{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Category:        item.Category,
			Quantity:        item.Quantity,
			BasePrice:       item.BasePrice.InexactFloat64(),
			UnitPrice:       item.UnitPrice.InexactFloat64(),
			SelectedOptions: make([]selectedOptionView, 0, len(item.SelectedOptions)),
			Notes:           item.Notes,
		}
		for _, opt := range item.SelectedOptions {
			itemView.SelectedOptions = append(itemView.SelectedOptions, selectedOptionView{
				ID:               opt.ID,
				Name:             opt.Name,
				Price:            opt.Price.InexactFloat64(),
				ReplaceBasePrice: opt.ReplaceBasePrice,
			})
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}
