// Package client models the shop's customers.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
	id        uint
	name      string
	email     *string
	phone     string
	document  string
	address   *string
	notes     *string
	createdAt time.Time
	updatedAt time.Time
}

func NewClient(name, phone, document string, email, address, notes *string, now time.Time) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 150 {
		return nil, fmt.Errorf("name exceeds maximum length of 150 characters")
	}
	if email != nil && *email != "" {
		if _, err := mail.ParseAddress(*email); err != nil {
			return nil, fmt.Errorf("invalid email: %s", *email)
		}
	}
	return &Client{
		name:      name,
		email:     email,
		phone:     NormalizeDigits(phone),
		document:  NormalizeDigits(document),
		address:   address,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructClient(id uint, name string, email *string, phone, document string, address, notes *string, createdAt, updatedAt time.Time) *Client {
	return &Client{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		document:  document,
		address:   address,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Client) ID() uint             { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) Email() *string       { return c.email }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Document() string     { return c.document }
func (c *Client) Address() *string     { return c.address }
func (c *Client) Notes() *string       { return c.notes }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

func (c *Client) SetID(id uint) {
	c.id = id
}

// NormalizeDigits keeps only the digits of phone numbers and tax documents.
func NormalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Filter struct {
	Search  string
	Page    int
	PerPage int
}

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int64, error)
	Delete(ctx context.Context, id uint) error
}
