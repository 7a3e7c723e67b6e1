package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/fxreport/internal/adapter/http/dto"
	"github.com/iho/fxreport/internal/domain"
)

func TestCurrencyHandler_List(t *testing.T) {
	handler := NewCurrencyHandler(domain.DefaultCatalog())

	req := httptest.NewRequest(http.MethodGet, "/currencies", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.CurrencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 6 {
		t.Fatalf("expected 6 currencies, got %d", len(resp))
	}
	if resp[0].Code != "TRY" || resp[0].Identifier != 1 {
		t.Errorf("expected local currency first, got %+v", resp[0])
	}
}
