package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stowage/services/item/domain/models"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const insertActivity = `
INSERT INTO item_activity (
    event_id, action, item_id, editor_id, name, location, previous_location, warnings, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (event_id) DO NOTHING`

const recentActivity = `
SELECT event_id, action, item_id, editor_id, name, location, previous_location, warnings, occurred_at, recorded_at
FROM item_activity
ORDER BY occurred_at DESC, recorded_at DESC
LIMIT $1`

// ActivityRepository implements repositories.ActivityRepository against PostgreSQL.
type ActivityRepository struct {
	db DBTX
}

// NewActivityRepository returns an ActivityRepository backed by db.
func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts a. A redelivered event with a known EventID is ignored.
func (r *ActivityRepository) Append(ctx context.Context, a *models.Activity) error {
	warnings := a.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	if _, err := r.db.Exec(ctx, insertActivity,
		a.EventID, a.Action, a.ItemID, a.EditorID, a.Name, a.Location, a.PreviousLocation, warnings, a.OccurredAt,
	); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := r.db.Query(ctx, recentActivity, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Activity, error) {
		var a models.Activity
		err := row.Scan(&a.EventID, &a.Action, &a.ItemID, &a.EditorID, &a.Name, &a.Location,
			&a.PreviousLocation, &a.Warnings, &a.OccurredAt, &a.RecordedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan activity: %w", err)
	}
	return out, nil
}
