package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
create extension if not exists pgcrypto;

create table if not exists users (
	id uuid primary key default gen_random_uuid(),
	email text not null unique,
	password_hash text not null,
	created_at timestamptz not null default now()
);

create table if not exists sim_accounts (
	id uuid primary key default gen_random_uuid(),
	user_id uuid not null unique references users(id),
	initial_cash_balance numeric not null,
	current_cash_balance numeric not null,
	realized_profit_usd numeric not null default 0,
	created_at timestamptz not null default now()
);

create table if not exists orders (
	id uuid primary key default gen_random_uuid(),
	account_id uuid not null references sim_accounts(id),
	coin_id text not null,
	coin_symbol text not null,
	side text not null,
	kind text not null,
	amount numeric not null,
	price numeric,
	status text not null,
	created_at timestamptz not null default now(),
	executed_at timestamptz,
	executed_price numeric
);
create index if not exists orders_account_created_idx on orders (account_id, created_at desc);

create table if not exists positions (
	id uuid primary key default gen_random_uuid(),
	account_id uuid not null references sim_accounts(id),
	coin_id text not null,
	coin_symbol text not null,
	amount_owned numeric not null,
	average_entry_price_usd numeric not null,
	updated_at timestamptz not null default now(),
	unique (account_id, coin_symbol)
);

create table if not exists trade_history (
	id uuid primary key default gen_random_uuid(),
	account_id uuid not null references sim_accounts(id),
	order_id uuid not null references orders(id),
	side text not null,
	coin_symbol text not null,
	amount_traded numeric not null,
	trade_price numeric not null,
	trade_total numeric not null,
	executed_at timestamptz not null default now()
);
create index if not exists trade_history_account_idx on trade_history (account_id, executed_at desc);

create table if not exists portfolio_snapshots (
	id uuid primary key default gen_random_uuid(),
	account_id uuid not null references sim_accounts(id),
	total_value_usd numeric not null,
	created_at timestamptz not null default now()
);
create index if not exists portfolio_snapshots_account_idx on portfolio_snapshots (account_id, created_at desc);
`

// Migrate applies the schema. Statements are idempotent so this can run on
// every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
