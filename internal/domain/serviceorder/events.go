package serviceorder

import (
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/domain/status"
)

// StatusChangedEvent is published after a lifecycle change commits.
// From is nil when the order was just created.
type StatusChangedEvent struct {
	ServiceID       uint
	ServiceNumber   string
	ServiceCenterID uint
	ClientID        uint
	VehicleID       uint
	From            *status.Name
	To              status.Name
	ChangedBy       *uint
	Reason          *string
	TotalAmount     decimal.Decimal
	OccurredAt      time.Time
}

func NewStatusChangedEvent(o *ServiceOrder, from *status.Name, changedBy *uint, reason *string, now time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		ServiceID:       o.ID(),
		ServiceNumber:   o.ServiceNumber(),
		ServiceCenterID: o.ServiceCenterID(),
		ClientID:        o.ClientID(),
		VehicleID:       o.VehicleID(),
		From:            from,
		To:              o.Status(),
		ChangedBy:       changedBy,
		Reason:          reason,
		TotalAmount:     o.TotalAmount(),
		OccurredAt:      now,
	}
}
