package portfolio

import (
	"net/http"
	"strconv"

	"cryptocube/internal/accounts"
	"cryptocube/internal/httputil"
	"cryptocube/internal/model"
)

type Handler struct {
	svc      *Service
	accounts *accounts.Service
}

func NewHandler(svc *Service, accountSvc *accounts.Service) *Handler {
	return &Handler{svc: svc, accounts: accountSvc}
}

// Positions returns the raw position book for the caller's account.
func (h *Handler) Positions(w http.ResponseWriter, r *http.Request, userID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	held, err := h.svc.positions.ListByAccount(r.Context(), acc.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if held == nil {
		held = []model.Position{}
	}
	httputil.WriteJSON(w, http.StatusOK, held)
}

func (h *Handler) Valuation(w http.ResponseWriter, r *http.Request, userID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	v, err := h.svc.Valuation(r.Context(), acc.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request, userID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	snaps, err := h.svc.History(r.Context(), acc.ID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if snaps == nil {
		snaps = []model.PortfolioSnapshot{}
	}
	httputil.WriteJSON(w, http.StatusOK, snaps)
}
