package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"garage/internal/shared/biztime"
)

// ServiceNumberGenerator produces numbers like OS202401-1234: a prefix, the
// business year and month, and four random digits. Uniqueness is enforced by
// the caller retrying on collision.
type ServiceNumberGenerator struct {
	prefix string
	now    func() time.Time
	digits func() int
}

func NewServiceNumberGenerator(prefix string) *ServiceNumberGenerator {
	if prefix == "" {
		prefix = "OS"
	}
	return &ServiceNumberGenerator{
		prefix: prefix,
		now:    biztime.NowUTC,
		digits: func() int { return rand.IntN(10000) },
	}
}

func (g *ServiceNumberGenerator) Generate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	month := biztime.Format(g.now(), "200601")
	return fmt.Sprintf("%s%s-%04d", g.prefix, month, g.digits()), nil
}
