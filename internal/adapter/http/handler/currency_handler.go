package handler

import (
	"net/http"

	"github.com/iho/fxreport/internal/adapter/http/dto"
	"github.com/iho/fxreport/internal/domain"
)

// CurrencyHandler serves the currency catalog.
type CurrencyHandler struct {
	catalog *domain.Catalog
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(catalog *domain.Catalog) *CurrencyHandler {
	return &CurrencyHandler{catalog: catalog}
}

// List returns the catalog in load order.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CurrenciesFromDomain(h.catalog.Channels()))
}
