// Package status holds the service order lifecycle states as reference data.
// It is the only place that maps status names to their persisted ids.
package status

import (
	"context"
	"errors"
	"fmt"
)

type Name string

const (
	Scheduled  Name = "scheduled"
	InProgress Name = "in_progress"
	Completed  Name = "completed"
	Cancelled  Name = "cancelled"
)

// ErrNotFound is returned when a status name or id is unknown.
var ErrNotFound = errors.New("service status not found")

var validNames = map[Name]bool{
	Scheduled:  true,
	InProgress: true,
	Completed:  true,
	Cancelled:  true,
}

func (n Name) String() string {
	return string(n)
}

func (n Name) IsValid() bool {
	return validNames[n]
}

// IsTerminal reports whether no further transition is allowed from n.
func (n Name) IsTerminal() bool {
	return n == Completed || n == Cancelled
}

// IsPending reports whether n counts as open work.
func (n Name) IsPending() bool {
	return n == Scheduled || n == InProgress
}

func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.IsValid() {
		return "", fmt.Errorf("invalid service status: %s", s)
	}
	return n, nil
}

// All lists the names in lifecycle order.
func All() []Name {
	return []Name{Scheduled, InProgress, Completed, Cancelled}
}

// Status is a row of the status reference table.
type Status struct {
	id        uint
	name      Name
	label     string
	color     string
	sortOrder int
}

func NewStatus(id uint, name Name, label, color string, sortOrder int) (*Status, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("invalid service status: %s", name)
	}
	if label == "" {
		return nil, fmt.Errorf("status label is required")
	}
	return &Status{
		id:        id,
		name:      name,
		label:     label,
		color:     color,
		sortOrder: sortOrder,
	}, nil
}

func (s *Status) ID() uint         { return s.id }
func (s *Status) Name() Name       { return s.name }
func (s *Status) Label() string    { return s.label }
func (s *Status) Color() string    { return s.color }
func (s *Status) SortOrder() int   { return s.sortOrder }
func (s *Status) IsTerminal() bool { return s.name.IsTerminal() }

// Registry resolves statuses. Implementations load the table once and serve
// lookups from memory.
type Registry interface {
	ListAll(ctx context.Context) ([]*Status, error)
	FindByName(ctx context.Context, name Name) (*Status, error)
	FindByID(ctx context.Context, id uint) (*Status, error)
}
