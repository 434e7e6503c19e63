package domain

import (
	"context"
	"time"
)

// ScanRepository stores the most recent scan snapshot for delivery.
type ScanRepository interface {
	SaveSnapshot(snap *ScanSnapshot)
	Latest() *ScanSnapshot
}

// SnapshotHistory appends finished snapshots to durable storage.
type SnapshotHistory interface {
	Append(ctx context.Context, snap *ScanSnapshot) error
}

// TokenRepository manages device tokens targeted by push alerts.
type TokenRepository interface {
	Register(ctx context.Context, token, platform string, at time.Time) error
	Unregister(ctx context.Context, token string) error
	All(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}
