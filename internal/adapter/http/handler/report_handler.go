package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxreport/internal/adapter/http/dto"
	"github.com/iho/fxreport/internal/domain"
)

// BalanceService defines the balance behavior needed by ReportHandler.
type BalanceService interface {
	GetBalances(ctx context.Context, channels []int) ([]domain.BalanceRow, error)
}

// DetailService defines the detail/preload behavior needed by
// ReportHandler.
type DetailService interface {
	Preload(ctx context.Context, visible []string)
	GetDetail(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error)
	RefreshDetail(ctx context.Context, accountID string) ([]domain.DetailRow, error)
}

// ReportHandler handles balance and detail report requests.
type ReportHandler struct {
	balanceUC BalanceService
	detailUC  DetailService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(balanceUC BalanceService, detailUC DetailService) *ReportHandler {
	return &ReportHandler{
		balanceUC: balanceUC,
		detailUC:  detailUC,
	}
}

// Balances fetches the balance report for a currency selection.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	var req dto.BalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rows, err := h.balanceUC.GetBalances(r.Context(), req.Channels)
	if err != nil {
		writeError(w, mapReportError(err), "failed to fetch balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesResponse{
		Rows:  dto.BalanceRowsFromDomain(rows),
		Total: len(rows),
	})
}

// Preload kicks off a background detail fetch for the visible page.
// Always 202: preloading is an optimization, not the request path.
func (h *ReportHandler) Preload(w http.ResponseWriter, r *http.Request) {
	var req dto.PreloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	// Detached from the request context: the page response does not
	// wait for the cycle.
	go h.detailUC.Preload(context.WithoutCancel(r.Context()), req.AccountIDs)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// Detail reads the cached detail rows for one account.
func (h *ReportHandler) Detail(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	rows, ok, err := h.detailUC.GetDetail(r.Context(), accountID)
	if err != nil {
		writeError(w, mapReportError(err), "failed to read detail", err.Error())
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.DetailResponse{
			AccountID: accountID,
			Cached:    false,
			Rows:      []dto.DetailRowResponse{},
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.DetailResponse{
		AccountID: accountID,
		Cached:    true,
		Rows:      dto.DetailRowsFromDomain(rows),
	})
}

// RefreshDetail force-fetches one account's detail, bypassing the
// cache and the preload throttle.
func (h *ReportHandler) RefreshDetail(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	rows, err := h.detailUC.RefreshDetail(r.Context(), accountID)
	if err != nil {
		writeError(w, mapReportError(err), "failed to refresh detail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DetailResponse{
		AccountID: accountID,
		Cached:    true,
		Rows:      dto.DetailRowsFromDomain(rows),
	})
}
