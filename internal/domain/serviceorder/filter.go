package serviceorder

import (
	"time"

	"garage/internal/domain/status"
)

// Filter combines list predicates with AND. Date bounds are UTC instants,
// already expanded to whole business days by the caller.
type Filter struct {
	Search          string
	Status          *status.Name
	ServiceCenterID *uint
	TechnicianID    *uint
	ClientID        *uint
	VehicleID       *uint
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
	WithDeleted     bool
	Page            int
	PerPage         int
	SortBy          string
	SortOrder       string
}
