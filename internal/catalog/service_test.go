package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

type stubCatalogRepo struct {
	categories map[int64]*models.Category
	products   map[int64]*models.Product
	created    []*models.Product
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		categories: map[int64]*models.Category{},
		products:   map[int64]*models.Product{},
	}
}

func (s *stubCatalogRepo) ListCategories(context.Context, bool) ([]models.Category, error) {
	return nil, nil
}

func (s *stubCatalogRepo) FindCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) CreateCategory(_ context.Context, c *models.Category) error {
	c.ID = int64(len(s.categories) + 1)
	s.categories[c.ID] = c
	return nil
}

func (s *stubCatalogRepo) UpdateCategory(context.Context, *models.Category) error { return nil }
func (s *stubCatalogRepo) DeleteCategory(context.Context, int64) error { return nil }

func (s *stubCatalogRepo) ListProducts(context.Context, ProductFilter) ([]models.Product, error) {
	return nil, nil
}

func (s *stubCatalogRepo) FindProductByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) CreateProduct(_ context.Context, p *models.Product) error {
	p.ID = int64(len(s.products) + 1)
	s.products[p.ID] = p
	s.created = append(s.created, p)
	return nil
}

func (s *stubCatalogRepo) UpdateProduct(context.Context, *models.Product) error { return nil }
func (s *stubCatalogRepo) DeleteProduct(context.Context, int64) error { return nil }

func (s *stubCatalogRepo) Menu(context.Context) ([]models.Category, error) { return nil, nil }

func TestGetProductNotFound(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo())
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), 7)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found", typed.Message())
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo())
	require.NoError(t, err)

	missing := int64(42)
	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name:       "كنافة",
		BasePrice:  decimal.RequireFromString("50"),
		CategoryID: &missing,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Category does not exist", typed.Message())
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo())
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name:      "كنافة",
		BasePrice: decimal.RequireFromString("-1"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateProductDefaultsToAvailable(t *testing.T) {
	repo := newStubCatalogRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:      "  معمول  ",
		BasePrice: decimal.RequireFromString("30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "معمول", product.Name)
	assert.True(t, product.IsAvailable)
	require.Len(t, repo.created, 1)
}
