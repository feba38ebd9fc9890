package usecases

import (
	"context"
	"time"

	"garage/internal/domain/client"
	"garage/internal/domain/vehicle"
)

type mockClientRepository struct {
	clients    map[uint]*client.Client
	created    []*client.Client
	deleted    []uint
	lastFilter client.Filter
	nextID     uint
	CreateFunc func(ctx context.Context, c *client.Client) error
}

func newMockClientRepository(clients ...*client.Client) *mockClientRepository {
	m := &mockClientRepository{clients: map[uint]*client.Client{}, nextID: 100}
	for _, c := range clients {
		m.clients[c.ID()] = c
	}
	return m
}

func (m *mockClientRepository) Create(ctx context.Context, c *client.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	c.SetID(m.nextID)
	m.nextID++
	m.clients[c.ID()] = c
	m.created = append(m.created, c)
	return nil
}

func (m *mockClientRepository) GetByID(_ context.Context, id uint) (*client.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, client.ErrNotFound
}

func (m *mockClientRepository) GetByIDs(_ context.Context, ids []uint) (map[uint]*client.Client, error) {
	out := map[uint]*client.Client{}
	for _, id := range ids {
		if c, ok := m.clients[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (m *mockClientRepository) List(_ context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	m.lastFilter = filter
	out := make([]*client.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *mockClientRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.clients[id]; !ok {
		return client.ErrNotFound
	}
	delete(m.clients, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockVehicleRepository struct {
	vehicles map[uint]*vehicle.Vehicle
	plates   map[string]bool
	nextID   uint
}

func newMockVehicleRepository(vehicles ...*vehicle.Vehicle) *mockVehicleRepository {
	m := &mockVehicleRepository{vehicles: map[uint]*vehicle.Vehicle{}, plates: map[string]bool{}, nextID: 500}
	for _, v := range vehicles {
		m.vehicles[v.ID()] = v
		m.plates[v.Plate()] = true
	}
	return m
}

func (m *mockVehicleRepository) Create(_ context.Context, v *vehicle.Vehicle) error {
	if m.plates[v.Plate()] {
		return vehicle.ErrPlateDuplicate
	}
	v.SetID(m.nextID)
	m.nextID++
	m.vehicles[v.ID()] = v
	m.plates[v.Plate()] = true
	return nil
}

func (m *mockVehicleRepository) GetByID(_ context.Context, id uint) (*vehicle.Vehicle, error) {
	if v, ok := m.vehicles[id]; ok {
		return v, nil
	}
	return nil, vehicle.ErrNotFound
}

func (m *mockVehicleRepository) GetByIDs(_ context.Context, ids []uint) (map[uint]*vehicle.Vehicle, error) {
	out := map[uint]*vehicle.Vehicle{}
	for _, id := range ids {
		if v, ok := m.vehicles[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (m *mockVehicleRepository) ListByClient(_ context.Context, clientID uint) ([]*vehicle.Vehicle, error) {
	out := []*vehicle.Vehicle{}
	for _, v := range m.vehicles {
		if v.BelongsTo(clientID) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepository) RaiseMileage(context.Context, uint, int) (bool, error) {
	return false, nil
}

func sampleClient(id uint) *client.Client {
	now := time.Now().UTC()
	return client.ReconstructClient(id, "João Pereira", nil, "11987654321", "39053344705", nil, nil, now, now)
}

func sampleVehicle(id, clientID uint, plate string) *vehicle.Vehicle {
	now := time.Now().UTC()
	return vehicle.ReconstructVehicle(id, clientID, plate, "Honda", "Civic", nil, nil, 30000, now, now)
}
