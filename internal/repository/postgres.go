package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scanner-backend/internal/domain"
)

// PostgresTokenRepository persists device tokens so push targets
// survive restarts.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

func (r *PostgresTokenRepository) Register(ctx context.Context, token, platform string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		insert into device_tokens(token, platform, created_at)
		values ($1, $2, $3)
		on conflict (token) do update set
			platform = excluded.platform
	`, token, platform, at)
	return err
}

func (r *PostgresTokenRepository) Unregister(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `delete from device_tokens where token = $1`, token)
	return err
}

func (r *PostgresTokenRepository) All(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select token from device_tokens`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *PostgresTokenRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `select count(*) from device_tokens`).Scan(&n)
	return n, err
}

// PostgresSnapshotHistory appends finished scan snapshots as JSON rows,
// giving callers a queryable history the in-process repo cannot.
type PostgresSnapshotHistory struct {
	pool *pgxpool.Pool
}

func NewPostgresSnapshotHistory(pool *pgxpool.Pool) *PostgresSnapshotHistory {
	return &PostgresSnapshotHistory{pool: pool}
}

func (h *PostgresSnapshotHistory) Append(ctx context.Context, snap *domain.ScanSnapshot) error {
	payload, err := json.Marshal(snap.Results)
	if err != nil {
		return err
	}
	_, err = h.pool.Exec(ctx, `
		insert into scan_snapshots(generated_at, candle_interval, payload)
		values ($1, $2, $3)
	`, snap.GeneratedAt, snap.Interval, payload)
	return err
}
