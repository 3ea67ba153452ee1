package controllers

import (
	"net/http"

	"github.com/sukkarlab/sweetshop-backend/api/responses"
	"github.com/sukkarlab/sweetshop-backend/api/validators"
	"github.com/sukkarlab/sweetshop-backend/internal/catalog"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
)

type productView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	CategoryID  *int64  `json:"categoryId"`
	ImageURL    *string `json:"imageUrl"`
	IsAvailable bool    `json:"isAvailable"`
	SortOrder   int     `json:"sortOrder"`
}

type optionView struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	PriceDelta       float64 `json:"priceDelta"`
	ReplaceBasePrice bool    `json:"replaceBasePrice"`
	IsActive         bool    `json:"isActive"`
	SortOrder        int     `json:"sortOrder"`
}

type optionGroupView struct {
	ID            int64        `json:"id"`
	ProductID     *int64       `json:"productId"`
	Name          string       `json:"name"`
	IsRequired    bool         `json:"isRequired"`
	SelectionType string       `json:"selectionType"`
	MinSelect     int          `json:"minSelect"`
	MaxSelect     int          `json:"maxSelect"`
	SortOrder     int          `json:"sortOrder"`
	Options       []optionView `json:"options"`
}

type productDetailView struct {
	productView
	OptionGroups []optionGroupView `json:"optionGroups"`
}

type categoryView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder int     `json:"sortOrder"`
	IsActive  bool    `json:"isActive"`
}

type menuCategoryView struct {
	categoryView
	Products []productView `json:"products"`
}

// Menu serves the storefront menu: active categories with their available
// products.
func Menu(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Menu(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]menuCategoryView, 0, len(categories))
		for i := range categories {
			entry := menuCategoryView{
				categoryView: toCategoryView(&categories[i]),
				Products:     make([]productView, 0, len(categories[i].Products)),
			}
			for j := range categories[i].Products {
				entry.Products = append(entry.Products, toProductView(&categories[i].Products[j]))
			}
			views = append(views, entry)
		}
		responses.WriteSuccess(w, views)
	}
}

// ListCategories serves the active categories without their products.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]categoryView, 0, len(categories))
		for i := range categories {
			views = append(views, toCategoryView(&categories[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// ListProducts serves the available products, optionally filtered by category.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filter := catalog.ProductFilter{AvailableOnly: true}
		if raw := r.URL.Query().Get("categoryId"); raw != "" {
			id, err := validators.ParsePathID(raw, "categoryId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.CategoryID = &id
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]productView, 0, len(products))
		for i := range products {
			views = append(views, toProductView(&products[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// GetProduct serves one product with its option groups for the storefront
// configurator.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := pathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductDetailView(product))
	}
}

func toCategoryView(category *models.Category) categoryView {
	return categoryView{
		ID:        category.ID,
		Name:      category.Name,
		ImageURL:  category.ImageURL,
		SortOrder: category.SortOrder,
		IsActive:  category.IsActive,
	}
}

func toProductView(product *models.Product) productView {
	return productView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice.InexactFloat64(),
		CategoryID:  product.CategoryID,
		ImageURL:    product.ImageURL,
		IsAvailable: product.IsAvailable,
		SortOrder:   product.SortOrder,
	}
}

func toOptionView(option *models.Option) optionView {
	return optionView{
		ID:               option.ID,
		Name:             option.Name,
		PriceDelta:       option.PriceDelta.InexactFloat64(),
		ReplaceBasePrice: option.ReplaceBasePrice,
		IsActive:         option.IsActive,
		SortOrder:        option.SortOrder,
	}
}

func toOptionGroupView(group *models.OptionGroup) optionGroupView {
	view := optionGroupView{
		ID:            group.ID,
		ProductID:     group.ProductID,
		Name:          group.Name,
		IsRequired:    group.IsRequired,
		SelectionType: string(group.SelectionType),
		MinSelect:     group.MinSelect,
		MaxSelect:     group.MaxSelect,
		SortOrder:     group.SortOrder,
		Options:       make([]optionView, 0, len(group.Options)),
	}
	for i := range group.Options {
		view.Options = append(view.Options, toOptionView(&group.Options[i]))
	}
	return view
}

func toProductDetailView(product *models.Product) productDetailView {
	view := productDetailView{
		productView:  toProductView(product),
		OptionGroups: make([]optionGroupView, 0, len(product.OptionGroups)),
	}
	for i := range product.OptionGroups {
		view.OptionGroups = append(view.OptionGroups, toOptionGroupView(&product.OptionGroups[i]))
	}
	return view
}
