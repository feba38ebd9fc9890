package serviceorder

import (
	"context"
	"time"

	"garage/internal/domain/status"
)

// StatusChange is one entry of the status audit trail. From is nil for the
// creation entry.
type StatusChange struct {
	ID        uint
	ServiceID uint
	From      *status.Name
	To        status.Name
	ChangedBy *uint
	Reason    *string
	Metadata  map[string]any
	CreatedAt time.Time
}

func NewStatusChange(serviceID uint, from *status.Name, to status.Name, changedBy *uint, reason *string, now time.Time) *StatusChange {
	return &StatusChange{
		ServiceID: serviceID,
		From:      from,
		To:        to,
		ChangedBy: changedBy,
		Reason:    reason,
		Metadata:  map[string]any{},
		CreatedAt: now,
	}
}

type HistoryRepository interface {
	Append(ctx context.Context, change *StatusChange) error
	ListByService(ctx context.Context, serviceID uint) ([]*StatusChange, error)
}
