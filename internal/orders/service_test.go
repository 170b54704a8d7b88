package orders

import (
	"errors"
	"testing"

	"cryptocube/internal/trading"
	"cryptocube/internal/types"

	"github.com/shopspring/decimal"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validRequest() PlaceRequest {
	return PlaceRequest{
		AccountID:  "acct-1",
		CoinID:     "bitcoin",
		CoinSymbol: "btc",
		Side:       types.OrderSideBuy,
		Kind:       types.OrderKindLimit,
		Amount:     decimal.RequireFromString("0.1"),
		Price:      decPtr("90000"),
	}
}

func TestValidatePlace(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlaceRequest)
		valid  bool
	}{
		{
			name:   "ValidLimitBuy",
			mutate: func(r *PlaceRequest) {},
			valid:  true,
		},
		{
			name: "ValidMarketSellWithoutPrice",
			mutate: func(r *PlaceRequest) {
				r.Side = types.OrderSideSell
				r.Kind = types.OrderKindMarket
				r.Price = nil
			},
			valid: true,
		},
		{
			name:   "MissingAccount",
			mutate: func(r *PlaceRequest) { r.AccountID = "" },
		},
		{
			name:   "MissingCoinSymbol",
			mutate: func(r *PlaceRequest) { r.CoinSymbol = "  " },
		},
		{
			name:   "MissingCoinID",
			mutate: func(r *PlaceRequest) { r.CoinID = "" },
		},
		{
			name:   "BadSide",
			mutate: func(r *PlaceRequest) { r.Side = "hold" },
		},
		{
			name:   "BadKind",
			mutate: func(r *PlaceRequest) { r.Kind = "stop" },
		},
		{
			name:   "ZeroAmount",
			mutate: func(r *PlaceRequest) { r.Amount = decimal.Zero },
		},
		{
			name:   "NegativeAmount",
			mutate: func(r *PlaceRequest) { r.Amount = decimal.RequireFromString("-1") },
		},
		{
			name:   "LimitWithoutPrice",
			mutate: func(r *PlaceRequest) { r.Price = nil },
		},
		{
			name:   "LimitWithZeroPrice",
			mutate: func(r *PlaceRequest) { r.Price = decPtr("0") },
		},
		{
			name: "MarketWithNegativePrice",
			mutate: func(r *PlaceRequest) {
				r.Kind = types.OrderKindMarket
				r.Price = decPtr("-5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := validatePlace(req)
			if tt.valid {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("expected error, got nil")
				return
			}
			if !errors.Is(err, trading.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
