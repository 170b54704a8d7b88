package orders

import (
	"net/http"
	"strings"

	"cryptocube/internal/accounts"
	"cryptocube/internal/httputil"
	"cryptocube/internal/model"
	"cryptocube/internal/types"

	"github.com/shopspring/decimal"
)

type Handler struct {
	svc      *Service
	accounts *accounts.Service
}

func NewHandler(svc *Service, accountSvc *accounts.Service) *Handler {
	return &Handler{svc: svc, accounts: accountSvc}
}

type placeOrderRequest struct {
	CoinID     string `json:"coin_id"`
	CoinSymbol string `json:"coin_symbol"`
	Side       string `json:"side"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Price      string `json:"price"`
}

func (h *Handler) Place(w http.ResponseWriter, r *http.Request, userID string) {
	var req placeOrderRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid amount"})
		return
	}
	var price *decimal.Decimal
	if strings.TrimSpace(req.Price) != "" {
		p, err := decimal.NewFromString(strings.TrimSpace(req.Price))
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid price"})
			return
		}
		price = &p
	}
	order, err := h.svc.Place(r.Context(), PlaceRequest{
		AccountID:  acc.ID,
		CoinID:     req.CoinID,
		CoinSymbol: req.CoinSymbol,
		Side:       types.OrderSide(strings.ToLower(req.Side)),
		Kind:       types.OrderKind(strings.ToLower(req.Kind)),
		Amount:     amount,
		Price:      price,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, userID, orderID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	order, err := h.svc.Cancel(r.Context(), acc.ID, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, userID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	orders, err := h.svc.List(r.Context(), acc.ID, r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	httputil.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) TradeHistory(w http.ResponseWriter, r *http.Request, userID string) {
	acc, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	trades, err := h.svc.History(r.Context(), acc.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if trades == nil {
		trades = []model.TradeHistory{}
	}
	httputil.WriteJSON(w, http.StatusOK, trades)
}
