package accounts

import (
	"context"
	"errors"
	"fmt"

	"cryptocube/internal/model"
	"cryptocube/internal/trading"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Service owns simulator accounts: one per user, created with the configured
// starting cash balance.
type Service struct {
	pool        *pgxpool.Pool
	initialCash decimal.Decimal
}

func NewService(pool *pgxpool.Pool, initialCash decimal.Decimal) *Service {
	return &Service{pool: pool, initialCash: initialCash}
}

const accountColumns = "id, user_id, initial_cash_balance, current_cash_balance, realized_profit_usd, created_at"

// CreateForUser inserts the account inside the caller's transaction so user
// and account creation commit together.
func (s *Service) CreateForUser(ctx context.Context, tx pgx.Tx, userID string) (model.Account, error) {
	var a model.Account
	err := tx.QueryRow(ctx,
		"insert into sim_accounts (user_id, initial_cash_balance, current_cash_balance) values ($1, $2, $2) returning "+accountColumns,
		userID, s.initialCash,
	).Scan(&a.ID, &a.UserID, &a.InitialCashBalance, &a.CurrentCashBalance, &a.RealizedProfitUSD, &a.CreatedAt)
	return a, err
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (model.Account, error) {
	var a model.Account
	err := s.pool.QueryRow(ctx,
		"select "+accountColumns+" from sim_accounts where user_id = $1", userID,
	).Scan(&a.ID, &a.UserID, &a.InitialCashBalance, &a.CurrentCashBalance, &a.RealizedProfitUSD, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, fmt.Errorf("account for user: %w", trading.ErrNotFound)
	}
	return a, err
}

func (s *Service) GetByID(ctx context.Context, accountID string) (model.Account, error) {
	var a model.Account
	err := s.pool.QueryRow(ctx,
		"select "+accountColumns+" from sim_accounts where id = $1", accountID,
	).Scan(&a.ID, &a.UserID, &a.InitialCashBalance, &a.CurrentCashBalance, &a.RealizedProfitUSD, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, fmt.Errorf("account: %w", trading.ErrNotFound)
	}
	return a, err
}

// GetForUpdate locks the account row for the remainder of the transaction.
func (s *Service) GetForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (model.Account, error) {
	var a model.Account
	err := tx.QueryRow(ctx,
		"select "+accountColumns+" from sim_accounts where id = $1 for update", accountID,
	).Scan(&a.ID, &a.UserID, &a.InitialCashBalance, &a.CurrentCashBalance, &a.RealizedProfitUSD, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, fmt.Errorf("account: %w", trading.ErrNotFound)
	}
	return a, err
}

func (s *Service) UpdateCash(ctx context.Context, tx pgx.Tx, accountID string, cash decimal.Decimal) error {
	_, err := tx.Exec(ctx, "update sim_accounts set current_cash_balance = $1 where id = $2", cash, accountID)
	return err
}

func (s *Service) AddRealizedProfit(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal) error {
	_, err := tx.Exec(ctx, "update sim_accounts set realized_profit_usd = realized_profit_usd + $1 where id = $2", delta, accountID)
	return err
}

// ListIDs returns every account id; used by the snapshot worker.
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "select id from sim_accounts order by created_at asc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
