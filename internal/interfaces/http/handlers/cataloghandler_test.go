package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/application/catalog/dto"
	"garage/internal/application/catalog/usecases"
	"garage/internal/interfaces/http/handlers/testutil"
	"garage/internal/shared/errors"
)

type mockCreateServiceCenterUC struct {
	cmd    usecases.CreateServiceCenterCommand
	result *dto.ServiceCenterDTO
	err    error
}

func (m *mockCreateServiceCenterUC) Execute(ctx context.Context, cmd usecases.CreateServiceCenterCommand) (*dto.ServiceCenterDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListServiceCentersUC struct {
	activeOnly bool
	result     []dto.ServiceCenterDTO
	err        error
}

func (m *mockListServiceCentersUC) Execute(ctx context.Context, activeOnly bool) ([]dto.ServiceCenterDTO, error) {
	m.activeOnly = activeOnly
	return m.result, m.err
}

type mockNearbyUC struct {
	query  usecases.FindNearbyQuery
	result []dto.ServiceCenterDTO
	err    error
}

func (m *mockNearbyUC) Execute(ctx context.Context, query usecases.FindNearbyQuery) ([]dto.ServiceCenterDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockCreateProductUC struct {
	cmd    usecases.CreateProductCommand
	result *dto.ProductDTO
	err    error
}

func (m *mockCreateProductUC) Execute(ctx context.Context, cmd usecases.CreateProductCommand) (*dto.ProductDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListProductsUC struct {
	query  usecases.ListProductsQuery
	result *usecases.ListProductsResult
	err    error
}

func (m *mockListProductsUC) Execute(ctx context.Context, query usecases.ListProductsQuery) (*usecases.ListProductsResult, error) {
	m.query = query
	return m.result, m.err
}

type mockListPaymentMethodsUC struct {
	result []dto.PaymentMethodDTO
	err    error
}

func (m *mockListPaymentMethodsUC) Execute(ctx context.Context) ([]dto.PaymentMethodDTO, error) {
	return m.result, m.err
}

type mockListStatusesUC struct {
	result []dto.StatusDTO
	err    error
}

func (m *mockListStatusesUC) Execute(ctx context.Context) ([]dto.StatusDTO, error) {
	return m.result, m.err
}

type catalogMocks struct {
	createCenter  *mockCreateServiceCenterUC
	listCenters   *mockListServiceCentersUC
	nearby        *mockNearbyUC
	createProduct *mockCreateProductUC
	listProducts  *mockListProductsUC
	payments      *mockListPaymentMethodsUC
	statuses      *mockListStatusesUC
}

func newCatalogHandler() (*CatalogHandler, *catalogMocks) {
	m := &catalogMocks{
		createCenter:  &mockCreateServiceCenterUC{},
		listCenters:   &mockListServiceCentersUC{},
		nearby:        &mockNearbyUC{},
		createProduct: &mockCreateProductUC{},
		listProducts:  &mockListProductsUC{},
		payments:      &mockListPaymentMethodsUC{},
		statuses:      &mockListStatusesUC{},
	}
	h := NewCatalogHandler(m.createCenter, m.listCenters, m.nearby, m.createProduct,
		m.listProducts, m.payments, m.statuses, 15, testutil.NewMockLogger())
	return h, m
}

func TestCatalogHandler_CreateServiceCenter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, m := newCatalogHandler()
		m.createCenter.result = &dto.ServiceCenterDTO{ID: 1, Code: "SP01"}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/service-centers", map[string]any{
			"name": "Paulista", "code": "SP01", "latitude": -23.561, "longitude": -46.656,
		})
		h.CreateServiceCenter(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.InDelta(t, -23.561, *m.createCenter.cmd.Latitude, 1e-9)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		h, _ := newCatalogHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/service-centers", map[string]any{
			"name": "Nowhere", "code": "X1", "latitude": 123.0,
		})
		h.CreateServiceCenter(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Errors, "latitude")
	})
}

func TestCatalogHandler_ListServiceCenters(t *testing.T) {
	h, m := newCatalogHandler()
	m.listCenters.result = []dto.ServiceCenterDTO{{ID: 1}}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/service-centers", nil)
	h.ListServiceCenters(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, m.listCenters.activeOnly)

	c, _ = testutil.NewTestContext(http.MethodGet, "/api/v1/service-centers", nil)
	testutil.SetQueryParams(c, map[string]string{"include_inactive": "true"})
	h.ListServiceCenters(c)
	assert.False(t, m.listCenters.activeOnly)
}

func TestCatalogHandler_FindNearby(t *testing.T) {
	t.Run("parses coordinates", func(t *testing.T) {
		h, m := newCatalogHandler()
		dist := 3.71
		m.nearby.result = []dto.ServiceCenterDTO{{ID: 2, Name: "Pinheiros", DistanceKm: &dist}}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/service-centers/nearby", nil)
		testutil.SetQueryParams(c, map[string]string{"lat": "-23.561", "lng": "-46.656", "radius_km": "5", "limit": "3"})
		h.FindNearbyServiceCenters(c)

		assert.Equal(t, http.StatusOK, w.Code)
		q := m.nearby.query
		assert.InDelta(t, -23.561, *q.Latitude, 1e-9)
		assert.InDelta(t, -46.656, *q.Longitude, 1e-9)
		assert.Equal(t, 5.0, q.RadiusKm)
		assert.Equal(t, 3, q.Limit)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got []dto.ServiceCenterDTO
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, 3.71, *got[0].DistanceKm)
	})

	t.Run("non numeric latitude", func(t *testing.T) {
		h, _ := newCatalogHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/service-centers/nearby", nil)
		testutil.SetQueryParams(c, map[string]string{"lat": "north", "lng": "-46.6"})
		h.FindNearbyServiceCenters(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Errors, "lat")
	})

	t.Run("missing coordinates reported by use case", func(t *testing.T) {
		h, m := newCatalogHandler()
		m.nearby.err = errors.NewFieldsValidationError(map[string][]string{
			"lat": {"The lat field is required."},
			"lng": {"The lng field is required."},
		})

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/service-centers/nearby", nil)
		h.FindNearbyServiceCenters(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Nil(t, m.nearby.query.Latitude)
	})
}

func TestCatalogHandler_Products(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		h, m := newCatalogHandler()
		m.createProduct.result = &dto.ProductDTO{ID: 5, SKU: "OIL-5W30", Price: "42.90"}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/products", map[string]any{
			"name": "Oil 5W30", "sku": "OIL-5W30", "price": "42.90", "stock_quantity": 10, "min_stock": 2, "unit": "L",
		})
		h.CreateProduct(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "42.9", m.createProduct.cmd.Price.String())
		assert.Equal(t, 10, m.createProduct.cmd.StockQuantity)
	})

	t.Run("list low stock", func(t *testing.T) {
		h, m := newCatalogHandler()
		m.listProducts.result = &usecases.ListProductsResult{Page: 1, PerPage: 15}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/products", nil)
		testutil.SetQueryParams(c, map[string]string{"low_stock": "1", "search": "oil"})
		h.ListProducts(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, m.listProducts.query.LowStock)
		assert.True(t, m.listProducts.query.ActiveOnly)
		assert.Equal(t, "oil", m.listProducts.query.Search)
	})
}

func TestCatalogHandler_ReferenceLists(t *testing.T) {
	h, m := newCatalogHandler()
	m.payments.result = []dto.PaymentMethodDTO{{ID: 1, Name: "Cash", Slug: "cash"}}
	m.statuses.result = []dto.StatusDTO{{ID: 1, Name: "pending", Label: "Pending"}}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/payment-methods", nil)
	h.ListPaymentMethods(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"cash"`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/v1/service-statuses", nil)
	h.ListServiceStatuses(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"pending"`)
}
