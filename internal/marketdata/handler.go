package marketdata

import (
	"net/http"

	"cryptocube/internal/httputil"
)

type Handler struct {
	quotes *Quotes
	WS     *QuoteWS
}

func NewHandler(quotes *Quotes, ws *QuoteWS) *Handler {
	return &Handler{quotes: quotes, WS: ws}
}

func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	all := h.quotes.All()
	out := make(map[string]string, len(all))
	for pair, price := range all {
		out[pair] = price.String()
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
