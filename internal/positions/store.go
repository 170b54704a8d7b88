package positions

import (
	"context"
	"errors"
	"time"

	"cryptocube/internal/model"

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

const positionColumns = "id, account_id, coin_id, coin_symbol, amount_owned, average_entry_price_usd, updated_at"

// GetForUpdate locks the position row for the transaction. ok is false when
// the account holds no position in the coin.
func (s *Store) GetForUpdate(ctx context.Context, tx pgx.Tx, accountID, coinSymbol string) (model.Position, bool, error) {
	var p model.Position
	err := tx.QueryRow(ctx,
		"select "+positionColumns+" from positions where account_id = $1 and coin_symbol = $2 for update",
		accountID, coinSymbol,
	).Scan(&p.ID, &p.AccountID, &p.CoinID, &p.CoinSymbol, &p.AmountOwned, &p.AvgEntryPriceUSD, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, false, nil
	}
	if err != nil {
		return p, false, err
	}
	return p, true, nil
}

func (s *Store) Create(ctx context.Context, tx pgx.Tx, accountID, coinID, coinSymbol string, amount, avgEntry decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		"insert into positions (account_id, coin_id, coin_symbol, amount_owned, average_entry_price_usd, updated_at) values ($1, $2, $3, $4, $5, $6)",
		accountID, coinID, coinSymbol, amount, avgEntry, time.Now().UTC())
	return err
}

func (s *Store) Update(ctx context.Context, tx pgx.Tx, positionID string, amount, avgEntry decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		"update positions set amount_owned = $1, average_entry_price_usd = $2, updated_at = $3 where id = $4",
		amount, avgEntry, time.Now().UTC(), positionID)
	return err
}

func (s *Store) ListByAccount(ctx context.Context, accountID string) ([]model.Position, error) {
	rows, err := s.pool.Query(ctx,
		"select "+positionColumns+" from positions where account_id = $1 and amount_owned > 0 order by coin_symbol asc",
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Position
	for rows.Next() {
		var p model.Position
		if err := rows.Scan(&p.ID, &p.AccountID, &p.CoinID, &p.CoinSymbol, &p.AmountOwned, &p.AvgEntryPriceUSD, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// WeightedAvgEntry merges a new buy into an existing position's cost basis:
// (oldAmount*oldAvg + fillAmount*fillPrice) / (oldAmount+fillAmount).
func WeightedAvgEntry(oldAmount, oldAvg, fillAmount, fillPrice decimal.Decimal) decimal.Decimal {
	combined := oldAmount.Add(fillAmount)
	if !combined.GreaterThan(decimal.Zero) {
		return fillPrice
	}
	return oldAmount.Mul(oldAvg).Add(fillAmount.Mul(fillPrice)).Div(combined)
}
