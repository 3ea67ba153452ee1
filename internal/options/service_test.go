package options

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

type stubOptionsRepo struct {
	groups   map[int64]*models.OptionGroup
	products map[int64]bool
	updated  []*models.OptionGroup
}

func newStubOptionsRepo() *stubOptionsRepo {
	return &stubOptionsRepo{groups: map[int64]*models.OptionGroup{}, products: map[int64]bool{}}
}

func (s *stubOptionsRepo) ListGroups(context.Context, *int64) ([]models.OptionGroup, error) {
	return nil, nil
}

func (s *stubOptionsRepo) FindGroupByID(_ context.Context, id int64) (*models.OptionGroup, error) {
	if g, ok := s.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOptionsRepo) CreateGroup(_ context.Context, g *models.OptionGroup) error {
	g.ID = int64(len(s.groups) + 1)
	s.groups[g.ID] = g
	return nil
}

func (s *stubOptionsRepo) UpdateGroup(_ context.Context, g *models.OptionGroup) error {
	s.updated = append(s.updated, g)
	return nil
}

func (s *stubOptionsRepo) DeleteGroup(context.Context, int64) error { return nil }

func (s *stubOptionsRepo) FindOptionByID(context.Context, int64) (*models.Option, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOptionsRepo) CreateOption(_ context.Context, o *models.Option) error {
	o.ID = 1
	return nil
}

func (s *stubOptionsRepo) UpdateOption(context.Context, *models.Option) error { return nil }
func (s *stubOptionsRepo) DeleteOption(context.Context, int64) error { return nil }

func (s *stubOptionsRepo) ProductExists(_ context.Context, id int64) (bool, error) {
	return s.products[id], nil
}

func TestCreateGroupValidatesSelectionType(t *testing.T) {
	svc, err := NewService(newStubOptionsRepo())
	require.NoError(t, err)

	_, err = svc.CreateGroup(context.Background(), GroupInput{Name: "الحجم", SelectionType: "triple"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Selection type must be single or multiple", typed.Message())
}

func TestCreateGroupValidatesCardinalityBounds(t *testing.T) {
	svc, err := NewService(newStubOptionsRepo())
	require.NoError(t, err)

	_, err = svc.CreateGroup(context.Background(), GroupInput{
		Name: "الحجم", SelectionType: "multiple", MinSelect: 3, MaxSelect: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "Max select cannot be less than min select", typed.Message())
}

func TestCreateGroupRejectsUnknownProduct(t *testing.T) {
	svc, err := NewService(newStubOptionsRepo())
	require.NoError(t, err)

	missing := int64(99)
	_, err = svc.CreateGroup(context.Background(), GroupInput{
		Name: "الحجم", SelectionType: "single", MaxSelect: 1, ProductID: &missing,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "Product does not exist", typed.Message())
}

func TestAssignGroupAttachAndDetach(t *testing.T) {
	repo := newStubOptionsRepo()
	repo.products[5] = true
	repo.groups[1] = &models.OptionGroup{ID: 1, Name: "الحجم", SelectionType: enums.SelectionTypeSingle, MaxSelect: 1}
	svc, err := NewService(repo)
	require.NoError(t, err)

	productID := int64(5)
	group, err := svc.AssignGroup(context.Background(), 1, AssignInput{ProductID: &productID})
	require.NoError(t, err)
	require.NotNil(t, group.ProductID)
	assert.Equal(t, int64(5), *group.ProductID)

	group, err = svc.AssignGroup(context.Background(), 1, AssignInput{ProductID: nil})
	require.NoError(t, err)
	assert.Nil(t, group.ProductID)
	assert.Len(t, repo.updated, 2)
}

func TestCreateOptionUnknownGroup(t *testing.T) {
	svc, err := NewService(newStubOptionsRepo())
	require.NoError(t, err)

	_, err = svc.CreateOption(context.Background(), 77, OptionInput{Name: "كبير"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Option group not found", typed.Message())
}
