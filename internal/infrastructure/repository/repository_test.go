package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/logger"
)

// setupTestDB opens an in-memory database with the full schema and the four
// service statuses. A single connection keeps every query on the same
// in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	for i, n := range status.All() {
		require.NoError(t, db.Create(&models.ServiceStatusModel{
			Name:      n.String(),
			Label:     n.String(),
			SortOrder: i + 1,
		}).Error)
	}
	return db
}

func newTestRegistry(t *testing.T, db *gorm.DB) *ServiceStatusRepository {
	t.Helper()
	reg := NewServiceStatusRepository(db, logger.NewNopLogger())
	_, err := reg.ListAll(context.Background())
	require.NoError(t, err)
	return reg
}

func statusIDOf(t *testing.T, reg status.Registry, n status.Name) uint {
	t.Helper()
	s, err := reg.FindByName(context.Background(), n)
	require.NoError(t, err)
	return s.ID()
}

func uintPtr(v uint) *uint { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedClient inserts a client and returns its id.
func seedClient(t *testing.T, db *gorm.DB, name, phone, document string) uint {
	t.Helper()
	m := &models.ClientModel{Name: name, Phone: phone, Document: document}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}
