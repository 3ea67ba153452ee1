package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// FeeResolver is the piece order assembly needs: the authoritative delivery
// fee for a city, falling back to the caller-supplied fee when no active zone
// matches.
type FeeResolver interface {
	ResolveFee(ctx context.Context, city string, fallback decimal.Decimal) (decimal.Decimal, error)
}

// Service manages delivery zones and resolves fees.
type Service interface {
	FeeResolver
	List(ctx context.Context) ([]models.DeliveryZone, error)
	Get(ctx context.Context, id int64) (*models.DeliveryZone, error)
	Create(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error)
	Update(ctx context.Context, id int64, input ZoneInput) (*models.DeliveryZone, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the delivery zone service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ResolveFee(ctx context.Context, city string, fallback decimal.Decimal) (decimal.Decimal, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return fallback, nil
	}
	zone, err := s.repo.FindActiveByCity(ctx, city)
	if err != nil {
		if db.IsNotFound(err) {
			return fallback, nil
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving delivery fee")
	}
	return zone.Fee, nil
}

func (s *service) List(ctx context.Context) ([]models.DeliveryZone, error) {
	zones, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing delivery zones")
	}
	return zones, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.DeliveryZone, error) {
	zone, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Delivery zone not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading delivery zone")
	}
	return zone, nil
}

func (s *service) Create(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error) {
	zone := &models.DeliveryZone{
		City:     strings.TrimSpace(input.City),
		Fee:      input.Fee,
		IsActive: true,
	}
	if input.IsActive != nil {
		zone.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, zone); err != nil {
		if db.IsUniqueViolation(err, "delivery_zones_city_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "A zone for this city already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating delivery zone")
	}
	return zone, nil
}

func (s *service) Update(ctx context.Context, id int64, input ZoneInput) (*models.DeliveryZone, error) {
	zone, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	zone.City = strings.TrimSpace(input.City)
	zone.Fee = input.Fee
	if input.IsActive != nil {
		zone.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, zone); err != nil {
		if db.IsUniqueViolation(err, "delivery_zones_city_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "A zone for this city already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating delivery zone")
	}
	return zone, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting delivery zone")
	}
	return nil
}
