package repositories

import (
	"context"

	"github.com/ghuser/stowage/services/item/domain/models"
)

// ActivityRepository stores the audit trail of catalog edits.
type ActivityRepository interface {
	// Append records an entry. Appending the same EventID twice is a no-op.
	Append(ctx context.Context, a *models.Activity) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}
