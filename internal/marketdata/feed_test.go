package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPairSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"btc", "BTCUSDT"},
		{"ETH", "ETHUSDT"},
		{" sol ", "SOLUSDT"},
	}
	for _, tt := range tests {
		if got := PairSymbol(tt.in); got != tt.want {
			t.Errorf("PairSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuotesSetGet(t *testing.T) {
	q := NewQuotes()

	q.Set("btcusdt", decimal.RequireFromString("90000"))
	price, ok := q.Get("BTCUSDT")
	if !ok {
		t.Fatalf("expected quote for BTCUSDT")
	}
	if !price.Equal(decimal.RequireFromString("90000")) {
		t.Errorf("expected 90000, got %s", price)
	}

	// Non-positive prices and empty pairs are dropped.
	q.Set("ETHUSDT", decimal.Zero)
	if _, ok := q.Get("ETHUSDT"); ok {
		t.Errorf("zero price should not be cached")
	}
	q.Set("", decimal.RequireFromString("1"))
	if len(q.All()) != 1 {
		t.Errorf("expected 1 cached quote, got %d", len(q.All()))
	}

	if _, ok := q.Get("XRPUSDT"); ok {
		t.Errorf("expected no quote for XRPUSDT")
	}
}

func TestFeedRefresh(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol": "BTCUSDT", "price": "95000.10"},
			{"symbol": "ETHUSDT", "price": "3500"},
			{"symbol": "BADUSDT", "price": "not-a-number"}
		]`))
	}))
	defer upstream.Close()

	quotes := NewQuotes()
	feed := NewFeed(upstream.URL, time.Minute, quotes)
	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price, ok := feed.PriceUSD("btc")
	if !ok {
		t.Fatalf("expected a price for btc")
	}
	if !price.Equal(decimal.RequireFromString("95000.10")) {
		t.Errorf("expected 95000.10, got %s", price)
	}
	if _, ok := quotes.Get("BADUSDT"); ok {
		t.Errorf("unparseable price should be skipped")
	}
	if _, ok := feed.PriceUSD("doge"); ok {
		t.Errorf("expected no price for doge")
	}
}

func TestFeedRefreshUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	feed := NewFeed(upstream.URL, time.Minute, NewQuotes())
	if err := feed.Refresh(context.Background()); err == nil {
		t.Errorf("expected error, got nil")
	}
}
