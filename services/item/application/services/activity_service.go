package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/stowage/services/item/domain/events"
	"github.com/ghuser/stowage/services/item/domain/models"
	"github.com/ghuser/stowage/services/item/domain/repositories"
)

const (
	// DefaultActivityLimit applies when Recent is called with a limit <= 0.
	DefaultActivityLimit = 50
	// MaxActivityLimit caps the number of entries Recent returns.
	MaxActivityLimit = 200
)

// ActivityService records and serves the audit trail of catalog edits.
type ActivityService struct {
	repo repositories.ActivityRepository
}

// NewActivityService returns an ActivityService backed by repo.
func NewActivityService(repo repositories.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record appends evt to the audit trail. Recording the same event twice is a no-op.
func (s *ActivityService) Record(ctx context.Context, evt events.ItemChangedEvent) error {
	a := &models.Activity{
		EventID:          evt.EventID,
		Action:           string(evt.Action),
		ItemID:           evt.ItemID,
		EditorID:         evt.EditorID,
		Name:             evt.Name,
		Location:         evt.Location,
		PreviousLocation: evt.PreviousLocation,
		Warnings:         evt.Warnings,
		OccurredAt:       evt.OccurredAt,
		RecordedAt:       time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, a); err != nil {
		return fmt.Errorf("record activity %s: %w", evt.EventID, err)
	}
	return nil
}

// Recent returns the newest entries. limit is clamped to [1, MaxActivityLimit];
// zero or less selects DefaultActivityLimit.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return entries, nil
}
