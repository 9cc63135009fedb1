package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagesight-backend/internal/models"
)

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

func (r *HistoryRepo) Create(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_history (id, device_id, image_hash, description, settings, model, processing_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	rec.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		rec.ID, rec.DeviceID, rec.ImageHash, rec.Description, rec.SettingsJSON, rec.Model, rec.ProcessingMs,
	).Scan(&rec.CreatedAt)
}

func (r *HistoryRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*models.AnalysisRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, device_id, image_hash, description, settings, model, processing_ms, created_at
		FROM analysis_history
		WHERE device_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.AnalysisRecord, 0)
	for rows.Next() {
		rec := &models.AnalysisRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.DeviceID, &rec.ImageHash, &rec.Description,
			&rec.SettingsJSON, &rec.Model, &rec.ProcessingMs, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
