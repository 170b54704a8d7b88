package model

import (
	"time"

	"cryptocube/internal/types"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	CoinID        string            `json:"coin_id"`
	CoinSymbol    string            `json:"coin_symbol"`
	Side          types.OrderSide   `json:"side"`
	Kind          types.OrderKind   `json:"kind"`
	Amount        decimal.Decimal   `json:"amount"`
	Price         *decimal.Decimal  `json:"price"`
	Status        types.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	ExecutedAt    *time.Time        `json:"executed_at,omitempty"`
	ExecutedPrice *decimal.Decimal  `json:"executed_price,omitempty"`
}

// Position is the quantity of a coin held by a simulator account plus its
// recorded average entry price. One row per (account, coin).
type Position struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"account_id"`
	CoinID           string          `json:"coin_id"`
	CoinSymbol       string          `json:"coin_symbol"`
	AmountOwned      decimal.Decimal `json:"amount_owned"`
	AvgEntryPriceUSD decimal.Decimal `json:"average_entry_price_usd"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Account is a user's paper-trading wallet, distinct from the login identity.
type Account struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	InitialCashBalance decimal.Decimal `json:"initial_cash_balance"`
	CurrentCashBalance decimal.Decimal `json:"current_cash_balance"`
	RealizedProfitUSD  decimal.Decimal `json:"realized_profit_usd"`
	CreatedAt          time.Time       `json:"created_at"`
}

// TradeHistory is an immutable record of one fill, created exactly once per
// executed order.
type TradeHistory struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	OrderID      string          `json:"order_id"`
	Side         types.OrderSide `json:"side"`
	CoinSymbol   string          `json:"coin_symbol"`
	AmountTraded decimal.Decimal `json:"amount_traded"`
	TradePrice   decimal.Decimal `json:"trade_price"`
	TradeTotal   decimal.Decimal `json:"trade_total"`
	ExecutedAt   time.Time       `json:"executed_at"`
}

type PortfolioSnapshot struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	TotalValueUSD decimal.Decimal `json:"total_value_usd"`
	CreatedAt     time.Time       `json:"created_at"`
}
