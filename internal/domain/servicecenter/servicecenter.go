// Package servicecenter models the shop's branches.
package servicecenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

var ErrNotFound = errors.New("service center not found")

type ServiceCenter struct {
	id        uint
	name      string
	code      string
	address   *string
	city      *string
	state     *string
	phone     *string
	email     *string
	latitude  *float64
	longitude *float64
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

type Params struct {
	Name      string
	Code      string
	Address   *string
	City      *string
	State     *string
	Phone     *string
	Email     *string
	Latitude  *float64
	Longitude *float64
}

func NewServiceCenter(p Params, now time.Time) (*ServiceCenter, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Code) == "" {
		return nil, fmt.Errorf("code is required")
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return nil, fmt.Errorf("invalid latitude: %f", *p.Latitude)
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return nil, fmt.Errorf("invalid longitude: %f", *p.Longitude)
	}
	return &ServiceCenter{
		name:      strings.TrimSpace(p.Name),
		code:      strings.ToUpper(strings.TrimSpace(p.Code)),
		address:   p.Address,
		city:      p.City,
		state:     p.State,
		phone:     p.Phone,
		email:     p.Email,
		latitude:  p.Latitude,
		longitude: p.Longitude,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructServiceCenter(id uint, p Params, active bool, createdAt, updatedAt time.Time) *ServiceCenter {
	return &ServiceCenter{
		id:        id,
		name:      p.Name,
		code:      p.Code,
		address:   p.Address,
		city:      p.City,
		state:     p.State,
		phone:     p.Phone,
		email:     p.Email,
		latitude:  p.Latitude,
		longitude: p.Longitude,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *ServiceCenter) ID() uint             { return s.id }
func (s *ServiceCenter) Name() string         { return s.name }
func (s *ServiceCenter) Code() string         { return s.code }
func (s *ServiceCenter) Address() *string     { return s.address }
func (s *ServiceCenter) City() *string        { return s.city }
func (s *ServiceCenter) State() *string       { return s.state }
func (s *ServiceCenter) Phone() *string       { return s.phone }
func (s *ServiceCenter) Email() *string       { return s.email }
func (s *ServiceCenter) Latitude() *float64   { return s.latitude }
func (s *ServiceCenter) Longitude() *float64  { return s.longitude }
func (s *ServiceCenter) IsActive() bool       { return s.active }
func (s *ServiceCenter) CreatedAt() time.Time { return s.createdAt }
func (s *ServiceCenter) UpdatedAt() time.Time { return s.updatedAt }

func (s *ServiceCenter) SetID(id uint) {
	s.id = id
}

// Location returns the center as an orb point and false when coordinates are missing.
func (s *ServiceCenter) Location() (orb.Point, bool) {
	if s.latitude == nil || s.longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*s.longitude, *s.latitude}, true
}

// Bounds is a latitude/longitude rectangle used to prefilter candidates in SQL.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

type Repository interface {
	Create(ctx context.Context, sc *ServiceCenter) error
	GetByID(ctx context.Context, id uint) (*ServiceCenter, error)
	List(ctx context.Context, activeOnly bool) ([]*ServiceCenter, error)
	// ListWithinBounds returns active centers with coordinates inside b.
	ListWithinBounds(ctx context.Context, b Bounds) ([]*ServiceCenter, error)
}
