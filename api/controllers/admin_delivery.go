package controllers

import (
	"net/http"

	"github.com/sukkarlab/sweetshop-backend/api/responses"
	"github.com/sukkarlab/sweetshop-backend/api/validators"
	"github.com/sukkarlab/sweetshop-backend/internal/delivery"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
)

type zoneView struct {
	ID       int64   `json:"id"`
	City     string  `json:"city"`
	Fee      float64 `json:"fee"`
	IsActive bool    `json:"isActive"`
}

func toZoneView(zone *models.DeliveryZone) zoneView {
	return zoneView{
		ID:       zone.ID,
		City:     zone.City,
		Fee:      zone.Fee.InexactFloat64(),
		IsActive: zone.IsActive,
	}
}

func AdminListZones(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		zones, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]zoneView, 0, len(zones))
		for i := range zones {
			views = append(views, toZoneView(&zones[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

func AdminCreateZone(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var payload delivery.ZoneInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zone, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toZoneView(zone))
	}
}

func AdminUpdateZone(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		id, err := pathID(r, "zoneId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload delivery.ZoneInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zone, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toZoneView(zone))
	}
}

func AdminDeleteZone(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		id, err := pathID(r, "zoneId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
