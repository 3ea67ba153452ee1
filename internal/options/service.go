package options

import (
	"context"
	"fmt"
	"strings"

	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
)

// Service manages option groups, their options, and product assignment.
type Service interface {
	ListGroups(ctx context.Context, productID *int64) ([]models.OptionGroup, error)
	GetGroup(ctx context.Context, id int64) (*models.OptionGroup, error)
	CreateGroup(ctx context.Context, input GroupInput) (*models.OptionGroup, error)
	UpdateGroup(ctx context.Context, id int64, input GroupInput) (*models.OptionGroup, error)
	DeleteGroup(ctx context.Context, id int64) error
	AssignGroup(ctx context.Context, groupID int64, input AssignInput) (*models.OptionGroup, error)

	CreateOption(ctx context.Context, groupID int64, input OptionInput) (*models.Option, error)
	UpdateOption(ctx context.Context, id int64, input OptionInput) (*models.Option, error)
	DeleteOption(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the options service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("options repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListGroups(ctx context.Context, productID *int64) ([]models.OptionGroup, error) {
	groups, err := s.repo.ListGroups(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing option groups")
	}
	return groups, nil
}

func (s *service) GetGroup(ctx context.Context, id int64) (*models.OptionGroup, error) {
	group, err := s.repo.FindGroupByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Option group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading option group")
	}
	return group, nil
}

func (s *service) CreateGroup(ctx context.Context, input GroupInput) (*models.OptionGroup, error) {
	selectionType, err := s.validateGroupInput(ctx, input)
	if err != nil {
		return nil, err
	}
	group := &models.OptionGroup{
		ProductID:     input.ProductID,
		Name:          strings.TrimSpace(input.Name),
		IsRequired:    input.IsRequired,
		SelectionType: selectionType,
		MinSelect:     input.MinSelect,
		MaxSelect:     input.MaxSelect,
		SortOrder:     input.SortOrder,
	}
	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating option group")
	}
	return group, nil
}

func (s *service) UpdateGroup(ctx context.Context, id int64, input GroupInput) (*models.OptionGroup, error) {
	selectionType, err := s.validateGroupInput(ctx, input)
	if err != nil {
		return nil, err
	}
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	group.ProductID = input.ProductID
	group.Name = strings.TrimSpace(input.Name)
	group.IsRequired = input.IsRequired
	group.SelectionType = selectionType
	group.MinSelect = input.MinSelect
	group.MaxSelect = input.MaxSelect
	group.SortOrder = input.SortOrder
	if err := s.repo.UpdateGroup(ctx, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating option group")
	}
	return group, nil
}

func (s *service) DeleteGroup(ctx context.Context, id int64) error {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteGroup(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting option group")
	}
	return nil
}

// AssignGroup moves a group onto a product, or detaches it when the input
// product id is null. Detached groups stay inert until reassigned.
func (s *service) AssignGroup(ctx context.Context, groupID int64, input AssignInput) (*models.OptionGroup, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.checkProductRef(ctx, input.ProductID); err != nil {
		return nil, err
	}
	group.ProductID = input.ProductID
	if err := s.repo.UpdateGroup(ctx, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assigning option group")
	}
	return group, nil
}

func (s *service) CreateOption(ctx context.Context, groupID int64, input OptionInput) (*models.Option, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	option := &models.Option{
		GroupID:          groupID,
		Name:             strings.TrimSpace(input.Name),
		PriceDelta:       input.PriceDelta,
		ReplaceBasePrice: input.ReplaceBasePrice,
		IsActive:         true,
		SortOrder:        input.SortOrder,
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if err := s.repo.CreateOption(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating option")
	}
	return option, nil
}

func (s *service) UpdateOption(ctx context.Context, id int64, input OptionInput) (*models.Option, error) {
	option, err := s.repo.FindOptionByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading option")
	}
	option.Name = strings.TrimSpace(input.Name)
	option.PriceDelta = input.PriceDelta
	option.ReplaceBasePrice = input.ReplaceBasePrice
	option.SortOrder = input.SortOrder
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if err := s.repo.UpdateOption(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating option")
	}
	return option, nil
}

func (s *service) DeleteOption(ctx context.Context, id int64) error {
	if _, err := s.repo.FindOptionByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Option not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading option")
	}
	if err := s.repo.DeleteOption(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting option")
	}
	return nil
}

func (s *service) validateGroupInput(ctx context.Context, input GroupInput) (enums.SelectionType, error) {
	selectionType, err := enums.ParseSelectionType(input.SelectionType)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Selection type must be single or multiple")
	}
	if input.MaxSelect < input.MinSelect {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Max select cannot be less than min select")
	}
	if err := s.checkProductRef(ctx, input.ProductID); err != nil {
		return "", err
	}
	return selectionType, nil
}

func (s *service) checkProductRef(ctx context.Context, productID *int64) error {
	if productID == nil {
		return nil
	}
	exists, err := s.repo.ProductExists(ctx, *productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "Product does not exist")
	}
	return nil
}
