// Package user models staff accounts.
package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"garage/internal/shared/authorization"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailDuplicate = errors.New("email already registered")
)

// PasswordHasher hashes and verifies staff passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type User struct {
	id              uint
	name            string
	email           string
	passwordHash    string
	role            authorization.UserRole
	serviceCenterID *uint
	active          bool
	lastLoginAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewUser(name, email, passwordHash string, role authorization.UserRole, serviceCenterID *uint, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %s", email)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		name:            name,
		email:           email,
		passwordHash:    passwordHash,
		role:            role,
		serviceCenterID: serviceCenterID,
		active:          true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructUser(id uint, name, email, passwordHash string, role authorization.UserRole, serviceCenterID *uint, active bool, lastLoginAt *time.Time, createdAt, updatedAt time.Time) *User {
	return &User{
		id:              id,
		name:            name,
		email:           email,
		passwordHash:    passwordHash,
		role:            role,
		serviceCenterID: serviceCenterID,
		active:          active,
		lastLoginAt:     lastLoginAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) ServiceCenterID() *uint       { return u.serviceCenterID }
func (u *User) IsActive() bool               { return u.active }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) {
	u.id = id
}

func (u *User) IsTechnician() bool {
	return u.role == authorization.RoleTechnician
}

func (u *User) RecordLogin(now time.Time) {
	u.lastLoginAt = &now
	u.updatedAt = now
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
}
