package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Feed polls an upstream ticker endpoint and keeps the latest price per pair
// in the quote cache. The upstream payload is a JSON array of
// {"symbol": "BTCUSDT", "price": "90000.00"} objects.
type Feed struct {
	url      string
	interval time.Duration
	client   *http.Client
	quotes   *Quotes
}

func NewFeed(url string, interval time.Duration, quotes *Quotes) *Feed {
	return &Feed{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		quotes:   quotes,
	}
}

// PriceUSD returns the cached USD price for a coin symbol.
func (f *Feed) PriceUSD(coinSymbol string) (decimal.Decimal, bool) {
	return f.quotes.Get(PairSymbol(coinSymbol))
}

type tickerEntry struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (f *Feed) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price feed returned %d", resp.StatusCode)
	}
	var entries []tickerEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("decode price feed: %w", err)
	}
	for _, e := range entries {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			continue
		}
		f.quotes.Set(e.Symbol, price)
	}
	return nil
}

// Run polls until ctx is cancelled. Upstream failures are logged and retried
// on the next tick; stale quotes stay served from the cache meanwhile.
func (f *Feed) Run(ctx context.Context) {
	if err := f.Refresh(ctx); err != nil {
		log.Printf("price feed: initial refresh failed: %v", err)
	}
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := f.Refresh(ctx); err != nil {
				log.Printf("price feed: refresh failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
