package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/authorization"
	"garage/internal/shared/logger"
)

type mockOrderRepository struct {
	CreateFunc       func(ctx context.Context, o *serviceorder.ServiceOrder) error
	UpdateFunc       func(ctx context.Context, o *serviceorder.ServiceOrder) error
	DeleteFunc       func(ctx context.Context, id uint) error
	GetByIDFunc      func(ctx context.Context, id uint) (*serviceorder.ServiceOrder, error)
	NumberExistsFunc func(ctx context.Context, number string) (bool, error)
	ListFunc         func(ctx context.Context, filter serviceorder.Filter) ([]*serviceorder.ServiceOrder, int64, error)
	StatisticsFunc   func(ctx context.Context, centerID *uint, monthStart time.Time) (*serviceorder.Statistics, error)
	AddItemFunc      func(ctx context.Context, item *serviceorder.Item) error
	DeleteItemFunc   func(ctx context.Context, serviceID, itemID uint) error
}

func (m *mockOrderRepository) Create(ctx context.Context, o *serviceorder.ServiceOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return o.SetID(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, o *serviceorder.ServiceOrder) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uint) (*serviceorder.ServiceOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, serviceorder.ErrNotFound
}

func (m *mockOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	if m.NumberExistsFunc != nil {
		return m.NumberExistsFunc(ctx, number)
	}
	return false, nil
}

func (m *mockOrderRepository) List(ctx context.Context, filter serviceorder.Filter) ([]*serviceorder.ServiceOrder, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*serviceorder.ServiceOrder{}, 0, nil
}

func (m *mockOrderRepository) Statistics(ctx context.Context, centerID *uint, monthStart time.Time) (*serviceorder.Statistics, error) {
	if m.StatisticsFunc != nil {
		return m.StatisticsFunc(ctx, centerID, monthStart)
	}
	return serviceorder.BuildStatistics(nil, decimal.Zero), nil
}

func (m *mockOrderRepository) AddItem(ctx context.Context, item *serviceorder.Item) error {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, item)
	}
	item.SetID(99)
	return nil
}

func (m *mockOrderRepository) DeleteItem(ctx context.Context, serviceID, itemID uint) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, serviceID, itemID)
	}
	return nil
}

type mockHistoryRepository struct {
	mu         sync.Mutex
	changes    []*serviceorder.StatusChange
	AppendFunc func(ctx context.Context, change *serviceorder.StatusChange) error
}

func (m *mockHistoryRepository) Append(ctx context.Context, change *serviceorder.StatusChange) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, change); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	change.ID = uint(len(m.changes) + 1)
	m.changes = append(m.changes, change)
	return nil
}

func (m *mockHistoryRepository) ListByService(_ context.Context, serviceID uint) ([]*serviceorder.StatusChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*serviceorder.StatusChange
	for _, c := range m.changes {
		if c.ServiceID == serviceID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockNumberGenerator struct {
	numbers []string
	calls   int
}

func (m *mockNumberGenerator) Generate(context.Context) (string, error) {
	n := "OS202401-0001"
	if m.calls < len(m.numbers) {
		n = m.numbers[m.calls]
	}
	m.calls++
	return n, nil
}

// mockTransactor runs fn inline and reports whether it failed.
type mockTransactor struct {
	runs      int
	rollbacks int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	if err := fn(ctx); err != nil {
		m.rollbacks++
		return err
	}
	return nil
}

type mockRegistry struct{}

func (mockRegistry) ListAll(context.Context) ([]*status.Status, error) {
	out := make([]*status.Status, 0, len(status.All()))
	for i, n := range status.All() {
		s, _ := status.NewStatus(uint(i+1), n, labelOf(n), "#000000", i+1)
		out = append(out, s)
	}
	return out, nil
}

func (r mockRegistry) FindByName(ctx context.Context, name status.Name) (*status.Status, error) {
	all, _ := r.ListAll(ctx)
	for _, s := range all {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, status.ErrNotFound
}

func (r mockRegistry) FindByID(ctx context.Context, id uint) (*status.Status, error) {
	all, _ := r.ListAll(ctx)
	for _, s := range all {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, status.ErrNotFound
}

func labelOf(n status.Name) string {
	switch n {
	case status.Scheduled:
		return "Scheduled"
	case status.InProgress:
		return "In progress"
	case status.Completed:
		return "Completed"
	default:
		return "Cancelled"
	}
}

type mockClientRepository struct {
	clients map[uint]*client.Client
}

func (m *mockClientRepository) Create(context.Context, *client.Client) error { return nil }

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

func (m *mockClientRepository) List(context.Context, client.Filter) ([]*client.Client, int64, error) {
	return nil, 0, nil
}

func (m *mockClientRepository) Delete(context.Context, uint) error { return nil }

type mockVehicleRepository struct {
	vehicles         map[uint]*vehicle.Vehicle
	RaiseMileageFunc func(ctx context.Context, id uint, mileage int) (bool, error)
}

func (m *mockVehicleRepository) Create(context.Context, *vehicle.Vehicle) error { return nil }

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

func (m *mockVehicleRepository) ListByClient(context.Context, uint) ([]*vehicle.Vehicle, error) {
	return nil, nil
}

func (m *mockVehicleRepository) RaiseMileage(ctx context.Context, id uint, mileage int) (bool, error) {
	if m.RaiseMileageFunc != nil {
		return m.RaiseMileageFunc(ctx, id, mileage)
	}
	return false, nil
}

type mockCenterRepository struct {
	centers map[uint]*servicecenter.ServiceCenter
}

func (m *mockCenterRepository) Create(context.Context, *servicecenter.ServiceCenter) error { return nil }

func (m *mockCenterRepository) GetByID(_ context.Context, id uint) (*servicecenter.ServiceCenter, error) {
	if c, ok := m.centers[id]; ok {
		return c, nil
	}
	return nil, servicecenter.ErrNotFound
}

func (m *mockCenterRepository) List(context.Context, bool) ([]*servicecenter.ServiceCenter, error) {
	out := make([]*servicecenter.ServiceCenter, 0, len(m.centers))
	for _, c := range m.centers {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCenterRepository) ListWithinBounds(context.Context, servicecenter.Bounds) ([]*servicecenter.ServiceCenter, error) {
	return nil, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func (m *mockUserRepository) Create(context.Context, *user.User) error { return nil }
func (m *mockUserRepository) Update(context.Context, *user.User) error { return nil }

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrNotFound
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []uint) (map[uint]*user.User, error) {
	out := map[uint]*user.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type mockPaymentRepository struct {
	methods map[uint]*payment.PaymentMethod
}

func (m *mockPaymentRepository) ListActive(context.Context) ([]*payment.PaymentMethod, error) {
	var out []*payment.PaymentMethod
	for _, pm := range m.methods {
		if pm.IsActive() {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) GetByID(_ context.Context, id uint) (*payment.PaymentMethod, error) {
	if pm, ok := m.methods[id]; ok {
		return pm, nil
	}
	return nil, payment.ErrNotFound
}

func (m *mockPaymentRepository) GetBySlug(_ context.Context, slug string) (*payment.PaymentMethod, error) {
	for _, pm := range m.methods {
		if pm.Slug() == slug {
			return pm, nil
		}
	}
	return nil, payment.ErrNotFound
}

type mockProductRepository struct {
	products           map[uint]*product.Product
	DecrementStockFunc func(ctx context.Context, id uint, quantity int) error
}

func (m *mockProductRepository) Create(context.Context, *product.Product) error { return nil }

func (m *mockProductRepository) GetByID(_ context.Context, id uint) (*product.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, product.ErrNotFound
}

func (m *mockProductRepository) GetByIDs(_ context.Context, ids []uint) (map[uint]*product.Product, error) {
	out := map[uint]*product.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockProductRepository) List(context.Context, product.Filter) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, quantity)
	}
	return nil
}

type mockNotifier struct {
	mu     sync.Mutex
	events []serviceorder.StatusChangedEvent
}

func (m *mockNotifier) NotifyStatusChanged(ev serviceorder.StatusChangedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

type mockMetrics struct {
	transitions []string
	hits        int
	misses      int
}

func (m *mockMetrics) RecordTransition(event, status string) {
	m.transitions = append(m.transitions, event+":"+status)
}

func (m *mockMetrics) RecordStatisticsCache(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

type mockStatisticsCache struct {
	stored      *serviceorder.Statistics
	invalidated int
}

func (m *mockStatisticsCache) Get(context.Context, *uint, time.Time) (*serviceorder.Statistics, error) {
	return m.stored, nil
}

func (m *mockStatisticsCache) Set(_ context.Context, _ *uint, _ time.Time, s *serviceorder.Statistics) error {
	m.stored = s
	return nil
}

func (m *mockStatisticsCache) InvalidateAll(context.Context) error {
	m.invalidated++
	m.stored = nil
	return nil
}

type mockAgendaSender struct {
	day    time.Time
	orders []*serviceorder.ServiceOrder
	err    error
}

func (m *mockAgendaSender) SendAgenda(_ context.Context, day time.Time, orders []*serviceorder.ServiceOrder) error {
	m.day = day
	m.orders = orders
	return m.err
}

// fixture wires every collaborator around one client, vehicle, center,
// technician, payment method and product.
type fixture struct {
	orders   *mockOrderRepository
	history  *mockHistoryRepository
	numbers  *mockNumberGenerator
	clients  *mockClientRepository
	vehicles *mockVehicleRepository
	centers  *mockCenterRepository
	users    *mockUserRepository
	payments *mockPaymentRepository
	products *mockProductRepository
	tx       *mockTransactor
	notifier *mockNotifier
	metrics  *mockMetrics
	cache    *mockStatisticsCache
	enricher *Enricher
	log      logger.Interface
}

const (
	clientID     uint = 1
	otherClient  uint = 2
	vehicleID    uint = 10
	centerID     uint = 20
	otherCenter  uint = 21
	technicianID uint = 30
	inactiveUser uint = 31
	cashID       uint = 40
	oilID        uint = 50
)

func newFixture() *fixture {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	email := "maria@example.com"

	f := &fixture{
		orders:   &mockOrderRepository{},
		history:  &mockHistoryRepository{},
		numbers:  &mockNumberGenerator{},
		clients:  &mockClientRepository{clients: map[uint]*client.Client{}},
		vehicles: &mockVehicleRepository{vehicles: map[uint]*vehicle.Vehicle{}},
		centers:  &mockCenterRepository{centers: map[uint]*servicecenter.ServiceCenter{}},
		users:    &mockUserRepository{users: map[uint]*user.User{}},
		payments: &mockPaymentRepository{methods: map[uint]*payment.PaymentMethod{}},
		products: &mockProductRepository{products: map[uint]*product.Product{}},
		tx:       &mockTransactor{},
		notifier: &mockNotifier{},
		metrics:  &mockMetrics{},
		cache:    &mockStatisticsCache{},
		log:      logger.NewNopLogger(),
	}

	f.clients.clients[clientID] = client.ReconstructClient(clientID, "Maria Silva", &email, "11999990000", "12345678901", nil, nil, now, now)
	f.clients.clients[otherClient] = client.ReconstructClient(otherClient, "Joao Souza", nil, "11988880000", "10987654321", nil, nil, now, now)
	year := 2018
	f.vehicles.vehicles[vehicleID] = vehicle.ReconstructVehicle(vehicleID, clientID, "ABC1D23", "Fiat", "Uno", &year, nil, 50000, now, now)
	f.centers.centers[centerID] = servicecenter.ReconstructServiceCenter(centerID, servicecenter.Params{Name: "Centro", Code: "CTR"}, true, now, now)
	f.centers.centers[otherCenter] = servicecenter.ReconstructServiceCenter(otherCenter, servicecenter.Params{Name: "Zona Sul", Code: "ZS"}, true, now, now)
	f.users.users[technicianID] = user.ReconstructUser(technicianID, "Tech", "tech@example.com", "x", authorization.RoleTechnician, nil, true, nil, now, now)
	f.users.users[inactiveUser] = user.ReconstructUser(inactiveUser, "Gone", "gone@example.com", "x", authorization.RoleTechnician, nil, false, nil, now, now)
	f.payments.methods[cashID] = payment.NewPaymentMethod(cashID, "Cash", "cash", true)
	f.products.products[oilID] = product.ReconstructProduct(oilID, "Oil 5W30", "OIL-5W30", nil, decimal.RequireFromString("45.90"), 10, 2, "un", true, now, now)

	f.enricher = NewEnricher(mockRegistry{}, f.clients, f.vehicles, f.centers, f.users, f.payments, f.products)
	return f
}

func (f *fixture) effects() SideEffects {
	return SideEffects{Cache: f.cache, Notifier: f.notifier, Metrics: f.metrics}
}

func admin() Actor {
	return Actor{UserID: 1, Role: authorization.RoleAdmin}
}

func staffOf(center uint) Actor {
	return Actor{UserID: 2, Role: authorization.RoleAttendant, ServiceCenterID: &center}
}

// storedOrder builds a persisted order in the given status and registers it
// with the order repository mock.
func (f *fixture) storedOrder(t testing.TB, id uint, st status.Name, mutate func(p *serviceorder.ReconstructParams)) *serviceorder.ServiceOrder {
	created := time.Now().UTC().Add(-2 * time.Hour)
	p := serviceorder.ReconstructParams{
		ID:              id,
		ServiceNumber:   "OS202401-0042",
		ClientID:        clientID,
		VehicleID:       vehicleID,
		ServiceCenterID: centerID,
		Status:          st,
		Description:     "Oil change",
		LaborCost:       decimal.RequireFromString("100.00"),
		Discount:        decimal.Zero,
		TotalAmount:     decimal.RequireFromString("100.00"),
		Priority:        serviceorder.PriorityNormal,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	if mutate != nil {
		mutate(&p)
	}
	o, err := serviceorder.ReconstructServiceOrder(p)
	if err != nil {
		t.Fatalf("reconstruct order: %v", err)
	}
	f.orders.GetByIDFunc = func(_ context.Context, got uint) (*serviceorder.ServiceOrder, error) {
		if got != id {
			return nil, serviceorder.ErrNotFound
		}
		return o, nil
	}
	return o
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
