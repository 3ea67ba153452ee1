package pricing

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// stubRepo mirrors the SQL contract of the real repository: selected options
// come back only when active and joined to one of the product's groups.
type stubRepo struct {
	products map[int64]*models.Product
	groups   []models.OptionGroup
	options  []models.Option
}

func (s *stubRepo) FindProductByID(_ context.Context, id int64) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindGroupsByProduct(_ context.Context, productID int64) ([]models.OptionGroup, error) {
	var out []models.OptionGroup
	for _, g := range s.groups {
		if g.ProductID != nil && *g.ProductID == productID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *stubRepo) FindSelectedOptions(_ context.Context, productID int64, optionIDs []int64) ([]models.Option, error) {
	wanted := map[int64]bool{}
	for _, id := range optionIDs {
		wanted[id] = true
	}
	groupOwners := map[int64]*int64{}
	for _, g := range s.groups {
		groupOwners[g.ID] = g.ProductID
	}
	var out []models.Option
	for _, opt := range s.options {
		if !wanted[opt.ID] || !opt.IsActive {
			continue
		}
		owner := groupOwners[opt.GroupID]
		if owner == nil || *owner != productID {
			continue
		}
		out = append(out, opt)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func ptrInt64(v int64) *int64 { return &v }

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// baklavaFixture is the canonical size-group setup: بقلاوة بالفستق at 45 with a
// required single-select "الحجم" group holding صغير (+0) and كبير (+15).
func baklavaFixture() *stubRepo {
	return &stubRepo{
		products: map[int64]*models.Product{
			1: {ID: 1, Name: "بقلاوة بالفستق", BasePrice: price("45")},
		},
		groups: []models.OptionGroup{
			{
				ID:            10,
				ProductID:     ptrInt64(1),
				Name:          "الحجم",
				IsRequired:    true,
				SelectionType: enums.SelectionTypeSingle,
				MinSelect:     1,
				MaxSelect:     1,
			},
		},
		options: []models.Option{
			{ID: 100, GroupID: 10, Name: "صغير", PriceDelta: price("0"), IsActive: true, SortOrder: 1},
			{ID: 101, GroupID: 10, Name: "كبير", PriceDelta: price("15"), IsActive: true, SortOrder: 2},
		},
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func requireValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, msg, typed.Message())
}

func TestCalculateUnknownProduct(t *testing.T) {
	svc := newTestService(t, &stubRepo{products: map[int64]*models.Product{}})

	_, err := svc.Calculate(context.Background(), 99, nil)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found", typed.Message())
}

func TestCalculateNoGroupsIgnoresForeignSelections(t *testing.T) {
	repo := &stubRepo{
		products: map[int64]*models.Product{
			1: {ID: 1, Name: "معمول", BasePrice: price("30")},
			2: {ID: 2, Name: "كنافة", BasePrice: price("50")},
		},
		groups: []models.OptionGroup{
			{ID: 20, ProductID: ptrInt64(2), Name: "Topping", SelectionType: enums.SelectionTypeMultiple, MaxSelect: 3},
		},
		options: []models.Option{
			{ID: 200, GroupID: 20, Name: "Pistachio", PriceDelta: price("5"), IsActive: true},
		},
	}
	svc := newTestService(t, repo)

	// Option 200 belongs to product 2, id 999 doesn't exist. Both are dropped.
	quote, err := svc.Calculate(context.Background(), 1, []int64{200, 999})
	require.NoError(t, err)

	assert.True(t, quote.FinalPrice.Equal(price("30")), "final=%s", quote.FinalPrice)
	assert.Empty(t, quote.SelectedOptions)
}

func TestCalculateInertUnassignedGroup(t *testing.T) {
	repo := baklavaFixture()
	repo.groups = append(repo.groups, models.OptionGroup{
		ID: 30, ProductID: nil, Name: "Orphans", IsRequired: true, MinSelect: 1, MaxSelect: 1,
	})
	svc := newTestService(t, repo)

	quote, err := svc.Calculate(context.Background(), 1, []int64{100})
	require.NoError(t, err)
	assert.True(t, quote.FinalPrice.Equal(price("45")))
}

func TestCalculateRequiredGroupMissing(t *testing.T) {
	svc := newTestService(t, baklavaFixture())

	_, err := svc.Calculate(context.Background(), 1, nil)
	requireValidation(t, err, "Required option missing in group الحجم")
}

func TestCalculateSingleGroupAllowsOnlyOne(t *testing.T) {
	repo := baklavaFixture()
	// Even with a wide max_select, single-select wins.
	repo.groups[0].MaxSelect = 5
	svc := newTestService(t, repo)

	_, err := svc.Calculate(context.Background(), 1, []int64{100, 101})
	requireValidation(t, err, "Only one option allowed in group الحجم")
}

func TestCalculateMinSelectNotMet(t *testing.T) {
	repo := &stubRepo{
		products: map[int64]*models.Product{1: {ID: 1, Name: "علبة مشكلة", BasePrice: price("80")}},
		groups: []models.OptionGroup{
			{ID: 40, ProductID: ptrInt64(1), Name: "النكهات", SelectionType: enums.SelectionTypeMultiple, MinSelect: 2, MaxSelect: 4},
		},
		options: []models.Option{
			{ID: 400, GroupID: 40, Name: "فستق", PriceDelta: price("3"), IsActive: true},
			{ID: 401, GroupID: 40, Name: "جوز", PriceDelta: price("2"), IsActive: true},
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Calculate(context.Background(), 1, []int64{400})
	requireValidation(t, err, "Minimum selection not met in group النكهات")
}

func TestCalculateMaxSelectExceeded(t *testing.T) {
	repo := &stubRepo{
		products: map[int64]*models.Product{1: {ID: 1, Name: "علبة مشكلة", BasePrice: price("80")}},
		groups: []models.OptionGroup{
			{ID: 40, ProductID: ptrInt64(1), Name: "النكهات", SelectionType: enums.SelectionTypeMultiple, MinSelect: 0, MaxSelect: 1},
		},
		options: []models.Option{
			{ID: 400, GroupID: 40, Name: "فستق", PriceDelta: price("3"), IsActive: true},
			{ID: 401, GroupID: 40, Name: "جوز", PriceDelta: price("2"), IsActive: true},
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Calculate(context.Background(), 1, []int64{400, 401})
	requireValidation(t, err, "Maximum selection exceeded in group النكهات")
}

func TestCalculateFirstViolationWins(t *testing.T) {
	repo := baklavaFixture()
	repo.groups = append(repo.groups, models.OptionGroup{
		ID: 50, ProductID: ptrInt64(1), Name: "التغليف", IsRequired: true,
		SelectionType: enums.SelectionTypeSingle, MinSelect: 1, MaxSelect: 1, SortOrder: 1,
	})
	svc := newTestService(t, repo)

	// Both groups are unsatisfied; the lower sort order is reported.
	_, err := svc.Calculate(context.Background(), 1, nil)
	requireValidation(t, err, "Required option missing in group الحجم")
}

func TestCalculateBaklavaScenario(t *testing.T) {
	svc := newTestService(t, baklavaFixture())

	quote, err := svc.Calculate(context.Background(), 1, []int64{101})
	require.NoError(t, err)
	assert.Equal(t, "بقلاوة بالفستق", quote.ProductName)
	assert.True(t, quote.BasePrice.Equal(price("45")))
	assert.True(t, quote.FinalPrice.Equal(price("60")), "final=%s", quote.FinalPrice)
	require.Len(t, quote.SelectedOptions, 1)
	assert.Equal(t, "كبير", quote.SelectedOptions[0].Name)
	assert.True(t, quote.SelectedOptions[0].Price.Equal(price("15")))
}

func TestCalculateReplaceBasePriceZeroesBase(t *testing.T) {
	repo := &stubRepo{
		products: map[int64]*models.Product{1: {ID: 1, Name: "صينية عيد", BasePrice: price("100")}},
		groups: []models.OptionGroup{
			{ID: 60, ProductID: ptrInt64(1), Name: "الوزن", SelectionType: enums.SelectionTypeSingle, MaxSelect: 1, SortOrder: 0},
			{ID: 61, ProductID: ptrInt64(1), Name: "إضافات", SelectionType: enums.SelectionTypeMultiple, MaxSelect: 3, SortOrder: 1},
		},
		options: []models.Option{
			{ID: 600, GroupID: 60, Name: "كيلو", PriceDelta: price("70"), ReplaceBasePrice: true, IsActive: true, SortOrder: 0},
			{ID: 610, GroupID: 61, Name: "شوكولا", PriceDelta: price("8"), IsActive: true, SortOrder: 1},
			{ID: 611, GroupID: 61, Name: "قشطة", PriceDelta: price("12"), IsActive: true, SortOrder: 2},
		},
	}
	svc := newTestService(t, repo)

	quote, err := svc.Calculate(context.Background(), 1, []int64{600, 610, 611})
	require.NoError(t, err)

	// Base price is discarded entirely; every delta still counts, including
	// the replacing option's own.
	assert.True(t, quote.FinalPrice.Equal(price("90")), "final=%s", quote.FinalPrice)
	assert.True(t, quote.BasePrice.Equal(price("100")))
	assert.Len(t, quote.SelectedOptions, 3)
}

func TestCalculateDuplicateSelectionsCollapse(t *testing.T) {
	svc := newTestService(t, baklavaFixture())

	quote, err := svc.Calculate(context.Background(), 1, []int64{101, 101, 101})
	require.NoError(t, err)
	assert.True(t, quote.FinalPrice.Equal(price("60")))
	assert.Len(t, quote.SelectedOptions, 1)
}

func TestCalculateInactiveOptionIsDropped(t *testing.T) {
	repo := baklavaFixture()
	repo.options[1].IsActive = false
	svc := newTestService(t, repo)

	// The only selected option is inactive, so the required group is empty.
	_, err := svc.Calculate(context.Background(), 1, []int64{101})
	requireValidation(t, err, "Required option missing in group الحجم")
}
