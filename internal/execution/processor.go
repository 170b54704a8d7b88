package execution

import (
	"context"
	"fmt"
	"time"

	"cryptocube/internal/accounts"
	"cryptocube/internal/model"
	"cryptocube/internal/orders"
	"cryptocube/internal/positions"
	"cryptocube/internal/trading"
	"cryptocube/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Processor executes pending orders. It is the sole owner of the
// PENDING -> EXECUTED transition, and applies the cash, position, history,
// and status mutations as one database transaction: either the whole fill
// lands or none of it does.
type Processor struct {
	pool      *pgxpool.Pool
	orders    *orders.Store
	positions *positions.Store
	accounts  *accounts.Service
	prices    PriceSource
}

func NewProcessor(pool *pgxpool.Pool, orderStore *orders.Store, positionStore *positions.Store, accountSvc *accounts.Service, prices PriceSource) *Processor {
	return &Processor{pool: pool, orders: orderStore, positions: positionStore, accounts: accountSvc, prices: prices}
}

type Result struct {
	Order       model.Order        `json:"order"`
	Trade       model.TradeHistory `json:"trade"`
	CashBalance string             `json:"cash_balance"`
}

// Execute fills the order identified by orderID for the owning account.
// Re-invoking on the same order fails with ErrInvalidState: the status check
// and the mutation share one transaction and the order row is locked first.
func (p *Processor) Execute(ctx context.Context, accountID, orderID string) (Result, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback(ctx)

	order, err := p.orders.GetForUpdate(ctx, tx, orderID, accountID)
	if err != nil {
		return Result{}, err
	}
	if order.Status != types.OrderStatusPending {
		return Result{}, fmt.Errorf("%w: order is %s", trading.ErrInvalidState, order.Status)
	}

	fill, err := computeFill(order, p.prices)
	if err != nil {
		return Result{}, err
	}

	account, err := p.accounts.GetForUpdate(ctx, tx, order.AccountID)
	if err != nil {
		return Result{}, err
	}

	var cash = account.CurrentCashBalance
	switch order.Side {
	case types.OrderSideBuy:
		if cash.LessThan(fill.Total) {
			return Result{}, fmt.Errorf("%w: need %s, have %s", trading.ErrInsufficientFunds, fill.Total, cash)
		}
		cash = cash.Sub(fill.Total)
		if err := p.applyBuy(ctx, tx, order, fill); err != nil {
			return Result{}, err
		}
	case types.OrderSideSell:
		realized, err := p.applySell(ctx, tx, order, fill)
		if err != nil {
			return Result{}, err
		}
		cash = cash.Add(fill.Total)
		if err := p.accounts.AddRealizedProfit(ctx, tx, account.ID, realized); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("%w: unknown side %q", trading.ErrValidation, order.Side)
	}

	if err := p.accounts.UpdateCash(ctx, tx, account.ID, cash); err != nil {
		return Result{}, err
	}

	executedAt := time.Now().UTC()
	trade, err := p.orders.CreateTradeHistory(ctx, tx, model.TradeHistory{
		AccountID:    order.AccountID,
		OrderID:      order.ID,
		Side:         order.Side,
		CoinSymbol:   order.CoinSymbol,
		AmountTraded: fill.Amount,
		TradePrice:   fill.Price,
		TradeTotal:   fill.Total,
		ExecutedAt:   executedAt,
	})
	if err != nil {
		return Result{}, err
	}

	if err := p.orders.MarkExecuted(ctx, tx, order.ID, executedAt, fill.Price); err != nil {
		return Result{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Result{}, err
	}

	order.Status = types.OrderStatusExecuted
	order.ExecutedAt = &executedAt
	order.ExecutedPrice = &fill.Price
	return Result{Order: order, Trade: trade, CashBalance: cash.String()}, nil
}

// applyBuy upserts the position: a new holding starts at the fill price, an
// existing one merges via the weighted-average entry price.
func (p *Processor) applyBuy(ctx context.Context, tx pgx.Tx, order model.Order, fill Fill) error {
	pos, ok, err := p.positions.GetForUpdate(ctx, tx, order.AccountID, order.CoinSymbol)
	if err != nil {
		return err
	}
	if !ok {
		return p.positions.Create(ctx, tx, order.AccountID, order.CoinID, order.CoinSymbol, fill.Amount, fill.Price)
	}
	newAmount := pos.AmountOwned.Add(fill.Amount)
	newAvg := positions.WeightedAvgEntry(pos.AmountOwned, pos.AvgEntryPriceUSD, fill.Amount, fill.Price)
	return p.positions.Update(ctx, tx, pos.ID, newAmount, newAvg)
}

// applySell reduces the position and returns the realized profit of the fill
// against the recorded cost basis. Selling more than owned is rejected; the
// average entry price is left unchanged.
func (p *Processor) applySell(ctx context.Context, tx pgx.Tx, order model.Order, fill Fill) (realized decimal.Decimal, err error) {
	pos, ok, err := p.positions.GetForUpdate(ctx, tx, order.AccountID, order.CoinSymbol)
	if err != nil {
		return realized, err
	}
	if !ok || pos.AmountOwned.LessThan(fill.Amount) {
		return realized, fmt.Errorf("%w: %s %s", trading.ErrInsufficientPosition, order.CoinSymbol, fill.Amount)
	}
	realized = fill.Price.Sub(pos.AvgEntryPriceUSD).Mul(fill.Amount)
	newAmount := pos.AmountOwned.Sub(fill.Amount)
	if err := p.positions.Update(ctx, tx, pos.ID, newAmount, pos.AvgEntryPriceUSD); err != nil {
		return realized, err
	}
	return realized, nil
}
