package portfolio

import (
	"testing"

	"cryptocube/internal/model"

	"github.com/shopspring/decimal"
)

type fakePrices map[string]string

func (f fakePrices) PriceUSD(coinSymbol string) (decimal.Decimal, bool) {
	raw, ok := f[coinSymbol]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(raw), true
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValuate(t *testing.T) {
	account := model.Account{
		InitialCashBalance: dec("10000"),
		CurrentCashBalance: dec("1000"),
	}
	held := []model.Position{
		{CoinSymbol: "BTC", AmountOwned: dec("0.1"), AvgEntryPriceUSD: dec("90000")},
	}

	s := &Service{prices: fakePrices{"BTC": "95000"}}
	v := s.valuate(account, held)

	if !v.Cash.Equal(dec("1000")) {
		t.Errorf("expected cash 1000, got %s", v.Cash)
	}
	if !v.InvestedCapital.Equal(dec("9000")) {
		t.Errorf("expected invested capital 9000, got %s", v.InvestedCapital)
	}
	if !v.PositionsValue.Equal(dec("9500")) {
		t.Errorf("expected positions value 9500, got %s", v.PositionsValue)
	}
	if !v.PortfolioValue.Equal(dec("10500")) {
		t.Errorf("expected portfolio value 10500, got %s", v.PortfolioValue)
	}
	if !v.UnrealizedPnL.Equal(dec("500")) {
		t.Errorf("expected unrealized pnl 500, got %s", v.UnrealizedPnL)
	}
	if len(v.Holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(v.Holdings))
	}
	h := v.Holdings[0]
	if !h.LivePrice {
		t.Errorf("expected live price for BTC")
	}
	if !h.MarketValueUSD.Equal(dec("9500")) {
		t.Errorf("expected market value 9500, got %s", h.MarketValueUSD)
	}
	if !h.UnrealizedPnL.Equal(dec("500")) {
		t.Errorf("expected holding pnl 500, got %s", h.UnrealizedPnL)
	}
}

func TestValuateCostBasisFallback(t *testing.T) {
	account := model.Account{
		InitialCashBalance: dec("10000"),
		CurrentCashBalance: dec("9000"),
	}
	held := []model.Position{
		{CoinSymbol: "DOGE", AmountOwned: dec("4000"), AvgEntryPriceUSD: dec("0.25")},
	}

	s := &Service{prices: fakePrices{}}
	v := s.valuate(account, held)

	// Without a live quote the position is valued at cost, so pnl is zero.
	if !v.PositionsValue.Equal(dec("1000")) {
		t.Errorf("expected positions value 1000, got %s", v.PositionsValue)
	}
	if !v.UnrealizedPnL.IsZero() {
		t.Errorf("expected zero unrealized pnl, got %s", v.UnrealizedPnL)
	}
	if v.Holdings[0].LivePrice {
		t.Errorf("expected stale price flag for DOGE")
	}
	if !v.Holdings[0].CurrentPriceUSD.Equal(dec("0.25")) {
		t.Errorf("expected fallback price 0.25, got %s", v.Holdings[0].CurrentPriceUSD)
	}
}

func TestValuateRealizedProfitInTotalReturn(t *testing.T) {
	// Account bought 0.1 BTC at 90000 and later sold it at 95000: cash is
	// back to 10500 with 500 realized and no open positions.
	account := model.Account{
		InitialCashBalance: dec("10000"),
		CurrentCashBalance: dec("10500"),
		RealizedProfitUSD:  dec("500"),
	}

	s := &Service{prices: fakePrices{}}
	v := s.valuate(account, nil)

	if !v.PortfolioValue.Equal(dec("10500")) {
		t.Errorf("expected portfolio value 10500, got %s", v.PortfolioValue)
	}
	if !v.TotalReturnUSD.Equal(dec("500")) {
		t.Errorf("expected total return 500, got %s", v.TotalReturnUSD)
	}
	if !v.TotalReturnPct.Equal(dec("5")) {
		t.Errorf("expected total return pct 5, got %s", v.TotalReturnPct)
	}
	if !v.UnrealizedPct.IsZero() {
		t.Errorf("expected zero unrealized pct with no positions, got %s", v.UnrealizedPct)
	}
}

func TestValuateEmptyAccount(t *testing.T) {
	account := model.Account{
		InitialCashBalance: dec("10000"),
		CurrentCashBalance: dec("10000"),
	}

	s := &Service{prices: fakePrices{}}
	v := s.valuate(account, nil)

	if !v.PortfolioValue.Equal(dec("10000")) {
		t.Errorf("expected portfolio value 10000, got %s", v.PortfolioValue)
	}
	if !v.TotalReturnUSD.IsZero() {
		t.Errorf("expected zero total return, got %s", v.TotalReturnUSD)
	}
	if len(v.Holdings) != 0 {
		t.Errorf("expected no holdings, got %d", len(v.Holdings))
	}
}
