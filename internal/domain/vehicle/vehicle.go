// Package vehicle models client vehicles and their live odometer.
package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrPlateDuplicate = errors.New("plate already registered")
)

type Vehicle struct {
	id        uint
	clientID  uint
	plate     string
	brand     string
	model     string
	year      *int
	color     *string
	mileage   int
	createdAt time.Time
	updatedAt time.Time
}

func NewVehicle(clientID uint, plate, brand, model string, year *int, color *string, mileage int, now time.Time) (*Vehicle, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	plate = NormalizePlate(plate)
	if plate == "" {
		return nil, fmt.Errorf("plate is required")
	}
	if strings.TrimSpace(brand) == "" || strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("brand and model are required")
	}
	if year != nil && (*year < 1900 || *year > now.Year()+1) {
		return nil, fmt.Errorf("invalid year: %d", *year)
	}
	if mileage < 0 {
		return nil, fmt.Errorf("mileage cannot be negative")
	}
	return &Vehicle{
		clientID:  clientID,
		plate:     plate,
		brand:     strings.TrimSpace(brand),
		model:     strings.TrimSpace(model),
		year:      year,
		color:     color,
		mileage:   mileage,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructVehicle(id, clientID uint, plate, brand, model string, year *int, color *string, mileage int, createdAt, updatedAt time.Time) *Vehicle {
	return &Vehicle{
		id:        id,
		clientID:  clientID,
		plate:     plate,
		brand:     brand,
		model:     model,
		year:      year,
		color:     color,
		mileage:   mileage,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (v *Vehicle) ID() uint             { return v.id }
func (v *Vehicle) ClientID() uint       { return v.clientID }
func (v *Vehicle) Plate() string        { return v.plate }
func (v *Vehicle) Brand() string        { return v.brand }
func (v *Vehicle) Model() string        { return v.model }
func (v *Vehicle) Year() *int           { return v.year }
func (v *Vehicle) Color() *string       { return v.color }
func (v *Vehicle) Mileage() int         { return v.mileage }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

func (v *Vehicle) SetID(id uint) {
	v.id = id
}

// BelongsTo reports whether the vehicle is owned by clientID.
func (v *Vehicle) BelongsTo(clientID uint) bool {
	return v.clientID == clientID
}

// NormalizePlate upper-cases the plate and drops separators.
func NormalizePlate(p string) string {
	p = strings.ToUpper(strings.TrimSpace(p))
	return strings.NewReplacer("-", "", " ", "").Replace(p)
}

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id uint) (*Vehicle, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Vehicle, error)
	ListByClient(ctx context.Context, clientID uint) ([]*Vehicle, error)
	// RaiseMileage sets mileage to the given value only when it is greater
	// than the stored one, and reports whether a row changed.
	RaiseMileage(ctx context.Context, id uint, mileage int) (bool, error)
}
