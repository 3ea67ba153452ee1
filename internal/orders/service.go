package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/internal/delivery"
	"github.com/sukkarlab/sweetshop-backend/internal/pricing"
	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service creates orders atomically and serves the admin order surface.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, input UpdateStatusInput) (*models.Order, error)
}

type service struct {
	tx     TxRunner
	repo   Repository
	pricer pricing.Service
	fees   delivery.FeeResolver
}

// NewService builds the order service. The fee resolver may be nil, in which
// case the caller-supplied delivery fee is always used.
func NewService(tx TxRunner, repo Repository, pricer pricing.Service, fees delivery.FeeResolver) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	return &service{tx: tx, repo: repo, pricer: pricer, fees: fees}, nil
}

// Create re-prices every line, resolves the delivery fee, and writes the
// order header plus all item snapshots in one transaction. Any failure leaves
// no rows behind.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, line := range input.Items {
		optionIDs := make([]int64, 0, len(line.SelectedOptions))
		for _, sel := range line.SelectedOptions {
			optionIDs = append(optionIDs, sel.OptionID)
		}
		quote, err := s.pricer.Calculate(ctx, line.ProductID, optionIDs)
		if err != nil {
			return nil, err
		}

		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID:       &productID,
			ProductName:     quote.ProductName,
			Category:        line.Category,
			Quantity:        line.Quantity,
			BasePrice:       quote.BasePrice,
			UnitPrice:       quote.FinalPrice,
			SelectedOptions: quote.SelectedOptions,
			Notes:           line.Notes,
		})
		subtotal = subtotal.Add(quote.FinalPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	fee := input.DeliveryFee
	if s.fees != nil {
		resolved, err := s.fees.ResolveFee(ctx, input.City, input.DeliveryFee)
		if err != nil {
			return nil, err
		}
		fee = resolved
	}

	order := &models.Order{
		CustomerName:   strings.TrimSpace(input.CustomerName),
		Phone:          strings.TrimSpace(input.Phone),
		SecondaryPhone: input.SecondaryPhone,
		Address:        strings.TrimSpace(input.Address),
		City:           strings.TrimSpace(input.City),
		DeliveryFee:    fee,
		TotalAmount:    subtotal.Add(fee),
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
		Status:         enums.OrderStatusPending,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return txRepo.CreateOrderItems(ctx, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting order")
	}

	return &CreateOrderResult{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	if filter.Status != "" {
		if _, err := enums.ParseOrderStatus(filter.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order status")
		}
	}
	out, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, input UpdateStatusInput) (*models.Order, error) {
	next, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order status")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == next {
		return order, nil
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "Order is already %s", order.Status)
	}
	if next == enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cannot move an order back to pending")
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	order.Status = next
	return order, nil
}

func validateCreateInput(input CreateOrderInput) error {
	required := []struct {
		value string
		msg   string
	}{
		{input.CustomerName, "Customer name is required"},
		{input.Phone, "Phone is required"},
		{input.Address, "Address is required"},
		{input.City, "City is required"},
		{input.PaymentMethod, "Payment method is required"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, field.msg)
		}
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.ProductID <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Item product id must be positive")
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Item quantity must be positive")
		}
	}
	if input.DeliveryFee.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Delivery fee cannot be negative")
	}
	return nil
}
