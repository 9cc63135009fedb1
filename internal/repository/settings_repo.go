package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepo persists per-device settings as an opaque JSON blob. The
// store never inspects or validates the blob; defaulting and validation
// happen at the API boundary.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get returns the stored blob for a device, or nil when the device has
// never saved settings.
func (r *SettingsRepo) Get(ctx context.Context, deviceID string) (json.RawMessage, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		"SELECT settings FROM user_settings WHERE device_id = $1", deviceID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Upsert stores the blob for a device, overwriting any previous value.
// The table holds at most one row per device; last write wins.
func (r *SettingsRepo) Upsert(ctx context.Context, deviceID string, settings json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_settings (device_id, settings)
		VALUES ($1, $2)
		ON CONFLICT (device_id) DO UPDATE
		SET settings = EXCLUDED.settings, updated_at = NOW()
	`, deviceID, settings)
	return err
}
