package marketdata

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type QuoteMessage struct {
	Type      string            `json:"type"`
	Prices    map[string]string `json:"prices"`
	Timestamp int64             `json:"ts"`
}

// QuoteWS streams the cached quotes to a client on a fixed interval.
type QuoteWS struct {
	origin   string
	quotes   *Quotes
	upgrader websocket.Upgrader
}

func NewQuoteWS(origin string, quotes *Quotes) *QuoteWS {
	return &QuoteWS{
		origin: origin,
		quotes: quotes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return allowOrigin(r, origin) },
		},
	}
}

func (h *QuoteWS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case <-ticker.C:
			all := h.quotes.All()
			prices := make(map[string]string, len(all))
			for pair, price := range all {
				prices[pair] = price.String()
			}
			msg := QuoteMessage{Type: "quotes", Prices: prices, Timestamp: time.Now().UTC().Unix()}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func allowOrigin(r *http.Request, origin string) bool {
	if origin == "*" {
		return true
	}
	return strings.EqualFold(r.Header.Get("Origin"), origin)
}
