package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/status"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type mockCenterRepository struct {
	centers    []*servicecenter.ServiceCenter
	lastBounds *servicecenter.Bounds
	createErr  error
}

func (m *mockCenterRepository) Create(_ context.Context, sc *servicecenter.ServiceCenter) error {
	if m.createErr != nil {
		return m.createErr
	}
	sc.SetID(uint(len(m.centers) + 1))
	m.centers = append(m.centers, sc)
	return nil
}

func (m *mockCenterRepository) GetByID(_ context.Context, id uint) (*servicecenter.ServiceCenter, error) {
	for _, c := range m.centers {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, servicecenter.ErrNotFound
}

func (m *mockCenterRepository) List(_ context.Context, activeOnly bool) ([]*servicecenter.ServiceCenter, error) {
	out := []*servicecenter.ServiceCenter{}
	for _, c := range m.centers {
		if !activeOnly || c.IsActive() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCenterRepository) ListWithinBounds(_ context.Context, b servicecenter.Bounds) ([]*servicecenter.ServiceCenter, error) {
	m.lastBounds = &b
	return m.List(context.Background(), true)
}

type mockProductRepository struct {
	products   []*product.Product
	lastFilter product.Filter
	createErr  error
}

func (m *mockProductRepository) Create(_ context.Context, p *product.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.SetID(uint(len(m.products) + 1))
	m.products = append(m.products, p)
	return nil
}

func (m *mockProductRepository) GetByID(context.Context, uint) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (m *mockProductRepository) GetByIDs(context.Context, []uint) (map[uint]*product.Product, error) {
	return map[uint]*product.Product{}, nil
}

func (m *mockProductRepository) List(_ context.Context, f product.Filter) ([]*product.Product, int64, error) {
	m.lastFilter = f
	return m.products, int64(len(m.products)), nil
}

func (m *mockProductRepository) DecrementStock(context.Context, uint, int) error { return nil }

type mockPaymentRepository struct {
	methods []*payment.PaymentMethod
}

func (m *mockPaymentRepository) ListActive(context.Context) ([]*payment.PaymentMethod, error) {
	return m.methods, nil
}

func (m *mockPaymentRepository) GetByID(context.Context, uint) (*payment.PaymentMethod, error) {
	return nil, payment.ErrNotFound
}

func (m *mockPaymentRepository) GetBySlug(context.Context, string) (*payment.PaymentMethod, error) {
	return nil, payment.ErrNotFound
}

type mockRegistry struct {
	statuses []*status.Status
}

func (m *mockRegistry) ListAll(context.Context) ([]*status.Status, error) { return m.statuses, nil }

func (m *mockRegistry) FindByName(context.Context, status.Name) (*status.Status, error) {
	return nil, status.ErrNotFound
}

func (m *mockRegistry) FindByID(context.Context, uint) (*status.Status, error) {
	return nil, status.ErrNotFound
}

func floatPtr(v float64) *float64 { return &v }

func center(id uint, name string, lat, lng *float64, active bool) *servicecenter.ServiceCenter {
	now := time.Now().UTC()
	return servicecenter.ReconstructServiceCenter(id, servicecenter.Params{
		Name:      name,
		Code:      fmt.Sprintf("C%d", id),
		Latitude:  lat,
		Longitude: lng,
	}, active, now, now)
}

func TestCreateServiceCenterUseCase(t *testing.T) {
	repo := &mockCenterRepository{}
	uc := NewCreateServiceCenterUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), CreateServiceCenterCommand{
		Name:      "Paulista",
		Code:      "sp-01",
		Latitude:  floatPtr(-23.5614),
		Longitude: floatPtr(-46.6559),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "SP-01", got.Code)
	assert.True(t, got.Active)

	_, err = uc.Execute(context.Background(), CreateServiceCenterCommand{Name: "Half", Code: "X", Latitude: floatPtr(1)})
	assert.True(t, errors.IsValidationError(err))

	repo.createErr = fmt.Errorf("failed to create service center: %w", fmt.Errorf("Error 1062: Duplicate entry 'SP-01'"))
	_, err = uc.Execute(context.Background(), CreateServiceCenterCommand{Name: "Again", Code: "SP-01"})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "code")
}

func TestListServiceCentersUseCase(t *testing.T) {
	repo := &mockCenterRepository{centers: []*servicecenter.ServiceCenter{
		center(1, "Open", nil, nil, true),
		center(2, "Closed", nil, nil, false),
	}}
	uc := NewListServiceCentersUseCase(repo, logger.NewNopLogger())

	all, err := uc.Execute(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := uc.Execute(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Open", active[0].Name)
}

func TestFindNearbyServiceCentersUseCase(t *testing.T) {
	// Paulista avenue, Pinheiros (about 4 km away), Campinas (about 85 km away).
	repo := &mockCenterRepository{centers: []*servicecenter.ServiceCenter{
		center(1, "Campinas", floatPtr(-22.9056), floatPtr(-47.0608), true),
		center(2, "Pinheiros", floatPtr(-23.5670), floatPtr(-46.6920), true),
		center(3, "Paulista", floatPtr(-23.5614), floatPtr(-46.6559), true),
		center(4, "No coordinates", nil, nil, true),
	}}
	uc := NewFindNearbyServiceCentersUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), FindNearbyQuery{
		Latitude:  floatPtr(-23.5614),
		Longitude: floatPtr(-46.6559),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Paulista", got[0].Name)
	require.NotNil(t, got[0].DistanceKm)
	assert.Equal(t, 0.0, *got[0].DistanceKm)
	assert.Equal(t, "Pinheiros", got[1].Name)
	assert.InDelta(t, 3.7, *got[1].DistanceKm, 0.5)

	require.NotNil(t, repo.lastBounds)
	assert.Less(t, repo.lastBounds.MinLat, -23.5614)
	assert.Greater(t, repo.lastBounds.MaxLat, -23.5614)

	wide, err := uc.Execute(context.Background(), FindNearbyQuery{
		Latitude:  floatPtr(-23.5614),
		Longitude: floatPtr(-46.6559),
		RadiusKm:  200,
		Limit:     2,
	})
	require.NoError(t, err)
	assert.Len(t, wide, 2)
}

func TestFindNearbyServiceCentersUseCase_Validation(t *testing.T) {
	uc := NewFindNearbyServiceCentersUseCase(&mockCenterRepository{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), FindNearbyQuery{})
	require.True(t, errors.IsValidationError(err))
	fields := errors.GetAppError(err).Fields
	assert.Contains(t, fields, "lat")
	assert.Contains(t, fields, "lng")

	_, err = uc.Execute(context.Background(), FindNearbyQuery{Latitude: floatPtr(91), Longitude: floatPtr(0), RadiusKm: 1000})
	require.True(t, errors.IsValidationError(err))
	fields = errors.GetAppError(err).Fields
	assert.Contains(t, fields, "lat")
	assert.Contains(t, fields, "radius_km")
	assert.NotContains(t, fields, "lng")
}

func TestCreateProductUseCase(t *testing.T) {
	repo := &mockProductRepository{}
	uc := NewCreateProductUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), CreateProductCommand{
		Name:          "Oil filter",
		SKU:           "of-100",
		Price:         decimal.RequireFromString("45.899"),
		StockQuantity: 3,
		MinStock:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, "OF-100", got.SKU)
	assert.Equal(t, "45.90", got.Price)
	assert.Equal(t, "un", got.Unit)
	assert.True(t, got.LowStock)

	_, err = uc.Execute(context.Background(), CreateProductCommand{Name: "Bad", SKU: "B", Price: decimal.NewFromInt(-1)})
	assert.True(t, errors.IsValidationError(err))

	repo.createErr = fmt.Errorf("failed to create product: UNIQUE constraint failed: products.sku")
	_, err = uc.Execute(context.Background(), CreateProductCommand{Name: "Dup", SKU: "OF-100", Price: decimal.NewFromInt(1)})
	require.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Fields, "sku")
}

func TestListProductsUseCase(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockProductRepository{products: []*product.Product{
		product.ReconstructProduct(1, "Oil", "OIL", nil, decimal.RequireFromString("45.9"), 10, 2, "l", true, now, now),
	}}
	uc := NewListProductsUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), ListProductsQuery{Search: "oil", LowStock: true, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 15, got.PerPage)
	assert.Equal(t, "45.90", got.Items[0].Price)
	assert.True(t, repo.lastFilter.LowStock)
	assert.Equal(t, "oil", repo.lastFilter.Search)
}

func TestReferenceDataUseCases(t *testing.T) {
	pm := NewListPaymentMethodsUseCase(&mockPaymentRepository{methods: []*payment.PaymentMethod{
		payment.NewPaymentMethod(1, "Cash", "cash", true),
		payment.NewPaymentMethod(2, "Pix", "pix", true),
	}}, logger.NewNopLogger())
	methods, err := pm.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "pix", methods[1].Slug)

	var all []*status.Status
	for i, name := range status.All() {
		s, err := status.NewStatus(uint(i+1), name, string(name), "#ffffff", i)
		require.NoError(t, err)
		all = append(all, s)
	}
	st := NewListStatusesUseCase(&mockRegistry{statuses: all}, logger.NewNopLogger())
	statuses, err := st.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 4)
	assert.Equal(t, "scheduled", statuses[0].Name)
	assert.False(t, statuses[0].IsTerminal)
	assert.True(t, statuses[2].IsTerminal)
}
