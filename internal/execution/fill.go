package execution

import (
	"errors"

	"cryptocube/internal/model"
	"cryptocube/internal/types"

	"github.com/shopspring/decimal"
)

// PriceSource is the live market price lookup, keyed by coin symbol.
type PriceSource interface {
	PriceUSD(coinSymbol string) (decimal.Decimal, bool)
}

// Fill is the computed execution of one order: the whole requested amount at
// a single price.
type Fill struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
	Total  decimal.Decimal
}

// computeFill resolves the fill for an order. Limit orders fill at their
// limit price. Market orders fill at the current live quote, falling back to
// the order's stored price when the feed has no quote for the symbol.
func computeFill(o model.Order, prices PriceSource) (Fill, error) {
	var price decimal.Decimal
	switch o.Kind {
	case types.OrderKindLimit:
		if o.Price == nil {
			return Fill{}, errors.New("limit order has no price")
		}
		price = *o.Price
	case types.OrderKindMarket:
		if live, ok := prices.PriceUSD(o.CoinSymbol); ok {
			price = live
		} else if o.Price != nil {
			price = *o.Price
		} else {
			return Fill{}, errors.New("no price available for " + o.CoinSymbol)
		}
	default:
		return Fill{}, errors.New("unknown order kind")
	}
	if !price.GreaterThan(decimal.Zero) {
		return Fill{}, errors.New("non-positive fill price")
	}
	return Fill{Price: price, Amount: o.Amount, Total: price.Mul(o.Amount)}, nil
}
