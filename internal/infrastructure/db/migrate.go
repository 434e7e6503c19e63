package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables this service needs. Setup stays
// inline (no external migration tool) while still giving persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists device_tokens (
			token text primary key,
			platform text not null default 'android',
			created_at timestamptz not null default now()
		);`,
		`create table if not exists scan_snapshots (
			id bigserial primary key,
			generated_at timestamptz not null,
			candle_interval text not null,
			payload jsonb not null
		);`,
		`create index if not exists scan_snapshots_generated_at_idx on scan_snapshots(generated_at desc);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
