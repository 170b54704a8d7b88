package orders

import (
	"context"
	"fmt"
	"strings"

	"cryptocube/internal/model"
	"cryptocube/internal/trading"
	"cryptocube/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Service struct {
	pool  *pgxpool.Pool
	store *Store
}

func NewService(pool *pgxpool.Pool, store *Store) *Service {
	return &Service{pool: pool, store: store}
}

type PlaceRequest struct {
	AccountID  string
	CoinID     string
	CoinSymbol string
	Side       types.OrderSide
	Kind       types.OrderKind
	Amount     decimal.Decimal
	Price      *decimal.Decimal
}

func validatePlace(req PlaceRequest) error {
	if req.AccountID == "" {
		return fmt.Errorf("%w: account is required", trading.ErrValidation)
	}
	if strings.TrimSpace(req.CoinSymbol) == "" || strings.TrimSpace(req.CoinID) == "" {
		return fmt.Errorf("%w: coin is required", trading.ErrValidation)
	}
	if !req.Side.Valid() {
		return fmt.Errorf("%w: side must be buy or sell", trading.ErrValidation)
	}
	if !req.Kind.Valid() {
		return fmt.Errorf("%w: kind must be market or limit", trading.ErrValidation)
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", trading.ErrValidation)
	}
	if req.Kind == types.OrderKindLimit && (req.Price == nil || !req.Price.GreaterThan(decimal.Zero)) {
		return fmt.Errorf("%w: limit orders require a positive price", trading.ErrValidation)
	}
	if req.Price != nil && !req.Price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: price must be positive", trading.ErrValidation)
	}
	return nil
}

// Place validates and persists a new PENDING order. Validation failures are
// returned before anything is written.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (model.Order, error) {
	if err := validatePlace(req); err != nil {
		return model.Order{}, err
	}
	order := model.Order{
		AccountID:  req.AccountID,
		CoinID:     strings.TrimSpace(req.CoinID),
		CoinSymbol: strings.ToUpper(strings.TrimSpace(req.CoinSymbol)),
		Side:       req.Side,
		Kind:       req.Kind,
		Amount:     req.Amount,
		Price:      req.Price,
		Status:     types.OrderStatusPending,
	}
	return s.store.Create(ctx, order)
}

// Cancel sets a PENDING order to CANCELLED. It never touches cash or
// positions.
func (s *Service) Cancel(ctx context.Context, accountID, orderID string) (model.Order, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Order{}, err
	}
	defer tx.Rollback(ctx)

	order, err := s.store.GetForUpdate(ctx, tx, orderID, accountID)
	if err != nil {
		return model.Order{}, err
	}
	if order.Status != types.OrderStatusPending {
		return model.Order{}, fmt.Errorf("%w: only pending orders can be cancelled", trading.ErrInvalidState)
	}
	if err := s.store.MarkCancelled(ctx, tx, order.ID); err != nil {
		return model.Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, err
	}
	order.Status = types.OrderStatusCancelled
	return order, nil
}

func (s *Service) List(ctx context.Context, accountID string, statusFilter string) ([]model.Order, error) {
	status := types.OrderStatus(strings.ToLower(strings.TrimSpace(statusFilter)))
	switch status {
	case "", types.OrderStatusPending, types.OrderStatusExecuted, types.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status filter", trading.ErrValidation)
	}
	return s.store.ListByAccount(ctx, accountID, status)
}

func (s *Service) History(ctx context.Context, accountID string) ([]model.TradeHistory, error) {
	return s.store.ListTradeHistory(ctx, accountID)
}
