package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sukkarlab/sweetshop-backend/api/validators"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func pathID(r *http.Request, name string) (int64, error) {
	return validators.ParsePathID(chi.URLParam(r, name), name)
}
