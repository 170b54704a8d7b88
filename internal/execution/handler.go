package execution

import (
	"net/http"

	"cryptocube/internal/accounts"
	"cryptocube/internal/httputil"
)

type Handler struct {
	proc     *Processor
	accounts *accounts.Service
}

func NewHandler(proc *Processor, accountSvc *accounts.Service) *Handler {
	return &Handler{proc: proc, accounts: accountSvc}
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request, userID, orderID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.proc.Execute(r.Context(), acc.ID, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"executed_order_ids": []string{res.Order.ID},
		"order":              res.Order,
		"trade":              res.Trade,
		"cash_balance":       res.CashBalance,
	})
}
