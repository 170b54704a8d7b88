package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryptocube/internal/model"
	"cryptocube/internal/trading"
	"cryptocube/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const orderColumns = "id, account_id, coin_id, coin_symbol, side, kind, amount, price, status, created_at, executed_at, executed_price"

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	var side, kind, status string
	err := row.Scan(&o.ID, &o.AccountID, &o.CoinID, &o.CoinSymbol, &side, &kind, &o.Amount, &o.Price, &status, &o.CreatedAt, &o.ExecutedAt, &o.ExecutedPrice)
	if err != nil {
		return o, err
	}
	o.Side = types.OrderSide(side)
	o.Kind = types.OrderKind(kind)
	o.Status = types.OrderStatus(status)
	return o, nil
}

func (s *Store) Create(ctx context.Context, o model.Order) (model.Order, error) {
	row := s.pool.QueryRow(ctx,
		"insert into orders (account_id, coin_id, coin_symbol, side, kind, amount, price, status, created_at) values ($1,$2,$3,$4,$5,$6,$7,$8,$9) returning "+orderColumns,
		o.AccountID, o.CoinID, o.CoinSymbol, string(o.Side), string(o.Kind), o.Amount, o.Price, string(o.Status), time.Now().UTC())
	return scanOrder(row)
}

// GetForUpdate locks the order row. Ownership is part of the predicate so a
// foreign order reads as absent.
func (s *Store) GetForUpdate(ctx context.Context, tx pgx.Tx, orderID, accountID string) (model.Order, error) {
	row := tx.QueryRow(ctx,
		"select "+orderColumns+" from orders where id = $1 and account_id = $2 for update",
		orderID, accountID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, fmt.Errorf("order: %w", trading.ErrNotFound)
	}
	return o, err
}

func (s *Store) MarkCancelled(ctx context.Context, tx pgx.Tx, orderID string) error {
	_, err := tx.Exec(ctx, "update orders set status = $1 where id = $2", string(types.OrderStatusCancelled), orderID)
	return err
}

func (s *Store) MarkExecuted(ctx context.Context, tx pgx.Tx, orderID string, executedAt time.Time, executedPrice decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		"update orders set status = $1, executed_at = $2, executed_price = $3 where id = $4",
		string(types.OrderStatusExecuted), executedAt, executedPrice, orderID)
	return err
}

func (s *Store) ListByAccount(ctx context.Context, accountID string, status types.OrderStatus) ([]model.Order, error) {
	var rows pgx.Rows
	var err error
	if status == "" {
		rows, err = s.pool.Query(ctx,
			"select "+orderColumns+" from orders where account_id = $1 order by created_at desc", accountID)
	} else {
		rows, err = s.pool.Query(ctx,
			"select "+orderColumns+" from orders where account_id = $1 and status = $2 order by created_at desc",
			accountID, string(status))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) CreateTradeHistory(ctx context.Context, tx pgx.Tx, t model.TradeHistory) (model.TradeHistory, error) {
	err := tx.QueryRow(ctx,
		"insert into trade_history (account_id, order_id, side, coin_symbol, amount_traded, trade_price, trade_total, executed_at) values ($1,$2,$3,$4,$5,$6,$7,$8) returning id",
		t.AccountID, t.OrderID, string(t.Side), t.CoinSymbol, t.AmountTraded, t.TradePrice, t.TradeTotal, t.ExecutedAt,
	).Scan(&t.ID)
	return t, err
}

func (s *Store) ListTradeHistory(ctx context.Context, accountID string) ([]model.TradeHistory, error) {
	rows, err := s.pool.Query(ctx,
		"select id, account_id, order_id, side, coin_symbol, amount_traded, trade_price, trade_total, executed_at from trade_history where account_id = $1 order by executed_at desc",
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TradeHistory
	for rows.Next() {
		var t model.TradeHistory
		var side string
		if err := rows.Scan(&t.ID, &t.AccountID, &t.OrderID, &side, &t.CoinSymbol, &t.AmountTraded, &t.TradePrice, &t.TradeTotal, &t.ExecutedAt); err != nil {
			return nil, err
		}
		t.Side = types.OrderSide(side)
		out = append(out, t)
	}
	return out, rows.Err()
}
