package portfolio

import (
	"context"
	"log"
	"time"

	"cryptocube/internal/model"
)

// Snapshotter periodically records each account's total portfolio value so
// the history endpoint can chart it over time.
type Snapshotter struct {
	svc      *Service
	interval time.Duration
}

func NewSnapshotter(svc *Service, interval time.Duration) *Snapshotter {
	return &Snapshotter{svc: svc, interval: interval}
}

func (s *Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.snapshotAll(ctx); err != nil {
				log.Printf("portfolio snapshot: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Snapshotter) snapshotAll(ctx context.Context) error {
	ids, err := s.svc.accounts.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, accountID := range ids {
		v, err := s.svc.Valuation(ctx, accountID)
		if err != nil {
			log.Printf("portfolio snapshot: account %s: %v", accountID, err)
			continue
		}
		_, err = s.svc.pool.Exec(ctx,
			"insert into portfolio_snapshots (account_id, total_value_usd, created_at) values ($1, $2, $3)",
			accountID, v.PortfolioValue, time.Now().UTC())
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) History(ctx context.Context, accountID string, limit int) ([]model.PortfolioSnapshot, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		"select id, account_id, total_value_usd, created_at from portfolio_snapshots where account_id = $1 order by created_at desc limit $2",
		accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.PortfolioSnapshot
	for rows.Next() {
		var snap model.PortfolioSnapshot
		if err := rows.Scan(&snap.ID, &snap.AccountID, &snap.TotalValueUSD, &snap.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
