package marketdata

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type quote struct {
	Price     decimal.Decimal
	UpdatedAt time.Time
}

// Quotes is an in-memory cache of the latest price per trading-pair symbol.
type Quotes struct {
	mu   sync.RWMutex
	data map[string]quote
}

func NewQuotes() *Quotes {
	return &Quotes{data: map[string]quote{}}
}

func (q *Quotes) Set(pair string, price decimal.Decimal) {
	pair = strings.ToUpper(strings.TrimSpace(pair))
	if pair == "" || !price.GreaterThan(decimal.Zero) {
		return
	}
	q.mu.Lock()
	q.data[pair] = quote{Price: price, UpdatedAt: time.Now().UTC()}
	q.mu.Unlock()
}

func (q *Quotes) Get(pair string) (decimal.Decimal, bool) {
	q.mu.RLock()
	v, ok := q.data[strings.ToUpper(strings.TrimSpace(pair))]
	q.mu.RUnlock()
	if !ok {
		return decimal.Zero, false
	}
	return v.Price, true
}

// All returns a copy of the cache keyed by pair symbol.
func (q *Quotes) All() map[string]decimal.Decimal {
	q.mu.RLock()
	out := make(map[string]decimal.Decimal, len(q.data))
	for pair, v := range q.data {
		out[pair] = v.Price
	}
	q.mu.RUnlock()
	return out
}

// PairSymbol normalizes a coin symbol to the quoted trading-pair symbol the
// upstream feed uses, e.g. "btc" -> "BTCUSDT".
func PairSymbol(coinSymbol string) string {
	return strings.ToUpper(strings.TrimSpace(coinSymbol)) + "USDT"
}
