package delivery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

type stubZoneRepo struct {
	zones     []models.DeliveryZone
	createErr error
}

func (s *stubZoneRepo) List(context.Context) ([]models.DeliveryZone, error) {
	return s.zones, nil
}

func (s *stubZoneRepo) FindByID(_ context.Context, id int64) (*models.DeliveryZone, error) {
	for i := range s.zones {
		if s.zones[i].ID == id {
			return &s.zones[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubZoneRepo) FindActiveByCity(_ context.Context, city string) (*models.DeliveryZone, error) {
	for i := range s.zones {
		if strings.EqualFold(s.zones[i].City, city) && s.zones[i].IsActive {
			return &s.zones[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubZoneRepo) Create(_ context.Context, zone *models.DeliveryZone) error {
	if s.createErr != nil {
		return s.createErr
	}
	zone.ID = int64(len(s.zones) + 1)
	s.zones = append(s.zones, *zone)
	return nil
}

func (s *stubZoneRepo) Update(context.Context, *models.DeliveryZone) error { return nil }
func (s *stubZoneRepo) Delete(context.Context, int64) error { return nil }

func TestCreateDuplicateCityConflicts(t *testing.T) {
	repo := &stubZoneRepo{
		createErr: errors.New(`ERROR: duplicate key value violates unique constraint "delivery_zones_city_key" (SQLSTATE 23505)`),
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ZoneInput{City: "دمشق", Fee: decimal.NewFromInt(20)})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "A zone for this city already exists", typed.Message())
}

func TestResolveFeeZoneOverridesFallback(t *testing.T) {
	repo := &stubZoneRepo{zones: []models.DeliveryZone{
		{ID: 1, City: "دمشق", Fee: decimal.RequireFromString("20"), IsActive: true},
	}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	fee, err := svc.ResolveFee(context.Background(), "دمشق", decimal.RequireFromString("5"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("20")), "fee=%s", fee)
}

func TestResolveFeeFallsBackWhenNoZone(t *testing.T) {
	svc, err := NewService(&stubZoneRepo{})
	require.NoError(t, err)

	fee, err := svc.ResolveFee(context.Background(), "حلب", decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("7.5")))
}

func TestResolveFeeIgnoresInactiveZone(t *testing.T) {
	repo := &stubZoneRepo{zones: []models.DeliveryZone{
		{ID: 1, City: "حمص", Fee: decimal.RequireFromString("12"), IsActive: false},
	}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	fee, err := svc.ResolveFee(context.Background(), "حمص", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())
}

func TestResolveFeeBlankCityUsesFallback(t *testing.T) {
	svc, err := NewService(&stubZoneRepo{})
	require.NoError(t, err)

	fee, err := svc.ResolveFee(context.Background(), "   ", decimal.RequireFromString("3"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("3")))
}
