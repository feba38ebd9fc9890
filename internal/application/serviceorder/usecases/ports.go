package usecases

import (
	"context"
	"time"

	"garage/internal/domain/serviceorder"
	"garage/internal/shared/authorization"
)

// StatusChangeNotifier fans lifecycle changes out to the notification
// channels. Implementations must not block the caller.
type StatusChangeNotifier interface {
	NotifyStatusChanged(event serviceorder.StatusChangedEvent)
}

// AgendaSender posts the digest of the orders scheduled for day.
type AgendaSender interface {
	SendAgenda(ctx context.Context, day time.Time, orders []*serviceorder.ServiceOrder) error
}

// MetricsRecorder receives lifecycle and cache counters.
type MetricsRecorder interface {
	RecordTransition(event, status string)
	RecordStatisticsCache(hit bool)
}

type nopNotifier struct{}

func (nopNotifier) NotifyStatusChanged(serviceorder.StatusChangedEvent) {}

type nopMetrics struct{}

func (nopMetrics) RecordTransition(string, string) {}
func (nopMetrics) RecordStatisticsCache(bool)      {}

// Actor identifies the authenticated staff member running a use case.
type Actor struct {
	UserID          uint
	Role            authorization.UserRole
	ServiceCenterID *uint
}

func (a Actor) userID() *uint {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

// scopeCenter limits a query to the actor's service center unless the actor is an admin.
func (a Actor) scopeCenter(requested *uint) *uint {
	return authorization.ScopeCenter(a.Role, a.ServiceCenterID, requested)
}

// canAccess reports whether the actor may see orders of centerID.
func (a Actor) canAccess(centerID uint) bool {
	scoped := a.scopeCenter(nil)
	return scoped == nil || *scoped == centerID
}
