package repository

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/mappers"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/db"
	"garage/internal/shared/logger"
)

// ServiceStatusRepository implements status.Registry. The table is read once
// and kept in memory; it only changes through seeding.
type ServiceStatusRepository struct {
	db     *gorm.DB
	logger logger.Interface

	mu     sync.RWMutex
	loaded bool
	all    []*status.Status
	byName map[status.Name]*status.Status
	byID   map[uint]*status.Status
}

func NewServiceStatusRepository(db *gorm.DB, logger logger.Interface) *ServiceStatusRepository {
	return &ServiceStatusRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ServiceStatusRepository) ListAll(ctx context.Context) ([]*status.Status, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*status.Status, len(r.all))
	copy(out, r.all)
	return out, nil
}

func (r *ServiceStatusRepository) FindByName(ctx context.Context, name status.Name) (*status.Status, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", status.ErrNotFound, name)
	}
	return s, nil
}

func (r *ServiceStatusRepository) FindByID(ctx context.Context, id uint) (*status.Status, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", status.ErrNotFound, id)
	}
	return s, nil
}

// Reload drops the cache so the next lookup reads the table again.
func (r *ServiceStatusRepository) Reload() {
	r.mu.Lock()
	r.loaded = false
	r.mu.Unlock()
}

func (r *ServiceStatusRepository) ensureLoaded(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}

	var rows []models.ServiceStatusModel
	if err := db.GetTxFromContext(ctx, r.db).Order("sort_order ASC, id ASC").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load service statuses: %w", err)
	}

	all := make([]*status.Status, 0, len(rows))
	byName := make(map[status.Name]*status.Status, len(rows))
	byID := make(map[uint]*status.Status, len(rows))
	for i := range rows {
		s, err := mappers.StatusToDomain(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping unknown service status row", "id", rows[i].ID, "name", rows[i].Name, "error", err)
			continue
		}
		all = append(all, s)
		byName[s.Name()] = s
		byID[s.ID()] = s
	}

	for _, n := range status.All() {
		if _, ok := byName[n]; !ok {
			return fmt.Errorf("service status %q is not seeded", n)
		}
	}

	r.all, r.byName, r.byID = all, byName, byID
	r.loaded = true
	return nil
}
