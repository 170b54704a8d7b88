package portfolio

import (
	"context"

	"cryptocube/internal/accounts"
	"cryptocube/internal/model"
	"cryptocube/internal/positions"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PriceSource is the live market price lookup, keyed by coin symbol.
type PriceSource interface {
	PriceUSD(coinSymbol string) (decimal.Decimal, bool)
}

type Holding struct {
	CoinSymbol       string          `json:"coin_symbol"`
	AmountOwned      decimal.Decimal `json:"amount_owned"`
	AvgEntryPriceUSD decimal.Decimal `json:"average_entry_price_usd"`
	CurrentPriceUSD  decimal.Decimal `json:"current_price_usd"`
	LivePrice        bool            `json:"live_price"`
	MarketValueUSD   decimal.Decimal `json:"market_value_usd"`
	UnrealizedPnL    decimal.Decimal `json:"unrealized_pnl"`
}

type Valuation struct {
	Cash            decimal.Decimal `json:"cash"`
	InvestedCapital decimal.Decimal `json:"invested_capital"`
	PositionsValue  decimal.Decimal `json:"positions_value"`
	PortfolioValue  decimal.Decimal `json:"portfolio_value"`
	UnrealizedPnL   decimal.Decimal `json:"unrealized_pnl"`
	UnrealizedPct   decimal.Decimal `json:"unrealized_pct"`
	TotalReturnUSD  decimal.Decimal `json:"total_return_usd"`
	TotalReturnPct  decimal.Decimal `json:"total_return_pct"`
	Holdings        []Holding       `json:"holdings"`
}

type Service struct {
	pool      *pgxpool.Pool
	accounts  *accounts.Service
	positions *positions.Store
	prices    PriceSource
}

func NewService(pool *pgxpool.Pool, accountSvc *accounts.Service, positionStore *positions.Store, prices PriceSource) *Service {
	return &Service{pool: pool, accounts: accountSvc, positions: positionStore, prices: prices}
}

// Valuation aggregates the account's cash and positions against live prices.
// Pure read path: nothing is mutated.
func (s *Service) Valuation(ctx context.Context, accountID string) (Valuation, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return Valuation{}, err
	}
	held, err := s.positions.ListByAccount(ctx, accountID)
	if err != nil {
		return Valuation{}, err
	}
	return s.valuate(account, held), nil
}

func (s *Service) valuate(account model.Account, held []model.Position) Valuation {
	v := Valuation{Cash: account.CurrentCashBalance, Holdings: make([]Holding, 0, len(held))}
	for _, p := range held {
		costBasis := p.AmountOwned.Mul(p.AvgEntryPriceUSD)
		price, live := s.prices.PriceUSD(p.CoinSymbol)
		if !live {
			// No quote for this symbol: value at cost basis.
			price = p.AvgEntryPriceUSD
		}
		marketValue := p.AmountOwned.Mul(price)
		v.InvestedCapital = v.InvestedCapital.Add(costBasis)
		v.PositionsValue = v.PositionsValue.Add(marketValue)
		v.Holdings = append(v.Holdings, Holding{
			CoinSymbol:       p.CoinSymbol,
			AmountOwned:      p.AmountOwned,
			AvgEntryPriceUSD: p.AvgEntryPriceUSD,
			CurrentPriceUSD:  price,
			LivePrice:        live,
			MarketValueUSD:   marketValue,
			UnrealizedPnL:    marketValue.Sub(costBasis),
		})
	}
	v.PortfolioValue = v.Cash.Add(v.PositionsValue)
	v.UnrealizedPnL = v.PositionsValue.Sub(v.InvestedCapital)
	if v.InvestedCapital.GreaterThan(decimal.Zero) {
		v.UnrealizedPct = v.UnrealizedPnL.Div(v.InvestedCapital).Mul(decimal.NewFromInt(100))
	}
	v.TotalReturnUSD = account.RealizedProfitUSD.Add(v.UnrealizedPnL)
	if account.InitialCashBalance.GreaterThan(decimal.Zero) {
		v.TotalReturnPct = v.TotalReturnUSD.Div(account.InitialCashBalance).Mul(decimal.NewFromInt(100))
	}
	return v
}
