package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/application/serviceorder/usecases"
	"garage/internal/interfaces/http/handlers/testutil"
	"garage/internal/shared/authorization"
	"garage/internal/shared/constants"
	"garage/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateServiceOrderUC struct {
	cmd    usecases.CreateServiceOrderCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockCreateServiceOrderUC) Execute(ctx context.Context, cmd usecases.CreateServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetServiceOrderUC struct {
	query  usecases.GetServiceOrderQuery
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockGetServiceOrderUC) Execute(ctx context.Context, query usecases.GetServiceOrderQuery) (*dto.ServiceOrderDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockListServiceOrdersUC struct {
	query  usecases.ListServiceOrdersQuery
	result *usecases.ListServiceOrdersResult
	err    error
}

func (m *mockListServiceOrdersUC) Execute(ctx context.Context, query usecases.ListServiceOrdersQuery) (*usecases.ListServiceOrdersResult, error) {
	m.query = query
	return m.result, m.err
}

type mockUpdateServiceOrderUC struct {
	cmd    usecases.UpdateServiceOrderCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockUpdateServiceOrderUC) Execute(ctx context.Context, cmd usecases.UpdateServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockDeleteServiceOrderUC struct {
	cmd usecases.DeleteServiceOrderCommand
	err error
}

func (m *mockDeleteServiceOrderUC) Execute(ctx context.Context, cmd usecases.DeleteServiceOrderCommand) error {
	m.cmd = cmd
	return m.err
}

type mockStartServiceOrderUC struct {
	cmd    usecases.StartServiceOrderCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockStartServiceOrderUC) Execute(ctx context.Context, cmd usecases.StartServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCompleteServiceOrderUC struct {
	cmd    usecases.CompleteServiceOrderCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockCompleteServiceOrderUC) Execute(ctx context.Context, cmd usecases.CompleteServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCancelServiceOrderUC struct {
	cmd    usecases.CancelServiceOrderCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockCancelServiceOrderUC) Execute(ctx context.Context, cmd usecases.CancelServiceOrderCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockAddItemUC struct {
	cmd    usecases.AddItemCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockAddItemUC) Execute(ctx context.Context, cmd usecases.AddItemCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockRemoveItemUC struct {
	cmd    usecases.RemoveItemCommand
	result *dto.ServiceOrderDTO
	err    error
}

func (m *mockRemoveItemUC) Execute(ctx context.Context, cmd usecases.RemoveItemCommand) (*dto.ServiceOrderDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockStatisticsUC struct {
	query  usecases.GetStatisticsQuery
	result *dto.StatisticsDTO
	err    error
}

func (m *mockStatisticsUC) Execute(ctx context.Context, query usecases.GetStatisticsQuery) (*dto.StatisticsDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockExportUC struct {
	query  usecases.ListServiceOrdersQuery
	result *usecases.ExportServiceOrdersResult
	err    error
}

func (m *mockExportUC) Execute(ctx context.Context, query usecases.ListServiceOrdersQuery) (*usecases.ExportServiceOrdersResult, error) {
	m.query = query
	return m.result, m.err
}

// =====================================================================
// Helpers
// =====================================================================

type serviceOrderMocks struct {
	create     *mockCreateServiceOrderUC
	get        *mockGetServiceOrderUC
	list       *mockListServiceOrdersUC
	update     *mockUpdateServiceOrderUC
	delete     *mockDeleteServiceOrderUC
	start      *mockStartServiceOrderUC
	complete   *mockCompleteServiceOrderUC
	cancel     *mockCancelServiceOrderUC
	addItem    *mockAddItemUC
	removeItem *mockRemoveItemUC
	stats      *mockStatisticsUC
	export     *mockExportUC
}

func newServiceOrderHandler() (*ServiceOrderHandler, *serviceOrderMocks) {
	m := &serviceOrderMocks{
		create:     &mockCreateServiceOrderUC{},
		get:        &mockGetServiceOrderUC{},
		list:       &mockListServiceOrdersUC{},
		update:     &mockUpdateServiceOrderUC{},
		delete:     &mockDeleteServiceOrderUC{},
		start:      &mockStartServiceOrderUC{},
		complete:   &mockCompleteServiceOrderUC{},
		cancel:     &mockCancelServiceOrderUC{},
		addItem:    &mockAddItemUC{},
		removeItem: &mockRemoveItemUC{},
		stats:      &mockStatisticsUC{},
		export:     &mockExportUC{},
	}
	h := NewServiceOrderHandler(ServiceOrderUseCases{
		Create:     m.create,
		Get:        m.get,
		List:       m.list,
		Update:     m.update,
		Delete:     m.delete,
		Start:      m.start,
		Complete:   m.complete,
		Cancel:     m.cancel,
		AddItem:    m.addItem,
		RemoveItem: m.removeItem,
		Statistics: m.stats,
		Export:     m.export,
	}, constants.DefaultPerPage, testutil.NewMockLogger())
	return h, m
}

func sampleOrderDTO(status string) *dto.ServiceOrderDTO {
	return &dto.ServiceOrderDTO{
		ID:              42,
		ServiceNumber:   "OS202403-0007",
		ClientID:        1,
		VehicleID:       10,
		ServiceCenterID: 3,
		Status:          dto.StatusDTO{Name: status, Label: status},
		Description:     "Oil change",
		LaborCost:       "100.00",
		Discount:        "10.00",
		TotalAmount:     "215.00",
		Priority:        "normal",
		Items:           []dto.ServiceItemDTO{},
	}
}

func parseOrder(t *testing.T, resp testutil.APIResponse) dto.ServiceOrderDTO {
	t.Helper()
	var order dto.ServiceOrderDTO
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	return order
}

// =====================================================================
// Tests
// =====================================================================

func TestServiceOrderHandler_Create_Success(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.create.result = sampleOrderDTO("pending")

	body := map[string]any{
		"client_id":         1,
		"vehicle_id":        10,
		"service_center_id": 3,
		"description":       "Oil change",
		"scheduled_date":    "2030-03-10 09:30:00",
		"labor_cost":        "100",
		"discount":          10,
		"items": []map[string]any{
			{"product_id": 5, "quantity": 2, "unit_price": "50"},
			{"quantity": 1, "unit_price": 25, "notes": "labor extra"},
		},
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services", body)
	testutil.SetAuthContext(c, 7, authorization.RoleAttendant, testutil.Uint(3))

	h.CreateServiceOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Service order created successfully", resp.Message)
	assert.Equal(t, "OS202403-0007", parseOrder(t, resp).ServiceNumber)

	cmd := m.create.cmd
	assert.Equal(t, uint(1), cmd.ClientID)
	assert.Equal(t, uint(3), cmd.ServiceCenterID)
	assert.True(t, decimal.NewFromInt(100).Equal(cmd.LaborCost))
	assert.True(t, decimal.NewFromInt(10).Equal(cmd.Discount))
	require.NotNil(t, cmd.ScheduledDate)
	assert.Equal(t, 2030, cmd.ScheduledDate.Year())
	require.Len(t, cmd.Items, 2)
	assert.Equal(t, uint(5), *cmd.Items[0].ProductID)
	assert.Nil(t, cmd.Items[1].ProductID)
	assert.True(t, decimal.NewFromInt(25).Equal(*cmd.Items[1].UnitPrice))
	assert.True(t, cmd.Items[1].Discount.IsZero())
	assert.Equal(t, uint(7), cmd.Actor.UserID)
	assert.Equal(t, authorization.RoleAttendant, cmd.Actor.Role)
	require.NotNil(t, cmd.Actor.ServiceCenterID)
	assert.Equal(t, uint(3), *cmd.Actor.ServiceCenterID)
}

func TestServiceOrderHandler_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{
			name:      "missing client",
			body:      map[string]any{"vehicle_id": 10, "description": "x"},
			wantField: "client_id",
		},
		{
			name:      "missing description",
			body:      map[string]any{"client_id": 1, "vehicle_id": 10},
			wantField: "description",
		},
		{
			name: "item quantity below one",
			body: map[string]any{
				"client_id": 1, "vehicle_id": 10, "description": "x",
				"items": []map[string]any{{"quantity": 0, "unit_price": 10}},
			},
			wantField: "items.0.quantity",
		},
		{
			name:      "bad scheduled date",
			body:      map[string]any{"client_id": 1, "vehicle_id": 10, "description": "x", "scheduled_date": "next week"},
			wantField: "scheduled_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newServiceOrderHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services", tt.body)
			testutil.SetAuthContext(c, 1, authorization.RoleAdmin, nil)

			h.CreateServiceOrder(c)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Errors, tt.wantField)
			assert.Zero(t, m.create.cmd.ClientID, "use case must not run")
		})
	}
}

func TestServiceOrderHandler_Create_MalformedBody(t *testing.T) {
	h, _ := newServiceOrderHandler()
	c, w := testutil.NewRawTestContext(http.MethodPost, "/api/v1/services", `{"client_id":`)

	h.CreateServiceOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceOrderHandler_Create_UseCaseFieldErrors(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.create.err = errors.NewFieldsValidationError(map[string][]string{
		"vehicle_id": {"The vehicle does not belong to the client."},
	})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services", map[string]any{
		"client_id": 1, "vehicle_id": 99, "description": "x",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin, nil)

	h.CreateServiceOrder(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, []string{"The vehicle does not belong to the client."}, resp.Errors["vehicle_id"])
}

func TestServiceOrderHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.get.result = sampleOrderDTO("in_progress")

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/42", nil)
		testutil.SetURLParam(c, "id", "42")
		testutil.SetAuthContext(c, 1, authorization.RoleManager, testutil.Uint(3))

		h.GetServiceOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), m.get.query.ServiceID)
	})

	t.Run("not found", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.get.err = errors.NewNotFoundError("service order not found")

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/42", nil)
		testutil.SetURLParam(c, "id", "42")

		h.GetServiceOrder(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "service order not found", resp.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		h, _ := newServiceOrderHandler()
		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/abc", nil)
		testutil.SetURLParam(c, "id", "abc")

		h.GetServiceOrder(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestServiceOrderHandler_List(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.list.result = &usecases.ListServiceOrdersResult{
		Items:   []*dto.ServiceOrderDTO{sampleOrderDTO("pending")},
		Total:   31,
		Page:    2,
		PerPage: 15,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services", nil)
	testutil.SetQueryParams(c, map[string]string{
		"search":            "ABC1D23",
		"status":            "pending",
		"service_center_id": "3",
		"technician_id":     "8",
		"date_from":         "2024-03-01",
		"date_to":           "2024-03-31",
		"page":              "2",
		"per_page":          "500",
		"sort_by":           "total_amount",
		"sort_order":        "asc",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin, nil)

	h.ListServiceOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	q := m.list.query
	assert.Equal(t, "ABC1D23", q.Search)
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, uint(3), *q.ServiceCenterID)
	assert.Equal(t, uint(8), *q.TechnicianID)
	assert.Nil(t, q.ClientID)
	assert.Equal(t, "2024-03-01", q.DateFrom)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, constants.MaxPerPage, q.PerPage)
	assert.Equal(t, "total_amount", q.SortBy)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(31), list.Total)
	assert.Equal(t, 3, list.LastPage)
}

func TestServiceOrderHandler_List_InvalidFilter(t *testing.T) {
	h, _ := newServiceOrderHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services", nil)
	testutil.SetQueryParams(c, map[string]string{"client_id": "-1"})

	h.ListServiceOrders(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, resp.Errors, "client_id")
}

func TestServiceOrderHandler_Update(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.update.result = sampleOrderDTO("pending")

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/services/42", map[string]any{
		"diagnosis":  "Worn brake pads",
		"labor_cost": "150.50",
		"priority":   "high",
	})
	testutil.SetURLParam(c, "id", "42")
	testutil.SetAuthContext(c, 1, authorization.RoleManager, testutil.Uint(3))

	h.UpdateServiceOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cmd := m.update.cmd
	assert.Equal(t, uint(42), cmd.ServiceID)
	assert.Equal(t, "Worn brake pads", *cmd.Diagnosis)
	assert.Equal(t, "150.5", cmd.LaborCost.String())
	assert.Equal(t, "high", *cmd.Priority)
	assert.Nil(t, cmd.ClientID)
	assert.Nil(t, cmd.Discount)
	assert.Nil(t, cmd.ScheduledDate)
}

func TestServiceOrderHandler_Delete(t *testing.T) {
	h, m := newServiceOrderHandler()

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/services/42", nil)
	testutil.SetURLParam(c, "id", "42")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin, nil)

	h.DeleteServiceOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), m.delete.cmd.ServiceID)
}

func TestServiceOrderHandler_Start(t *testing.T) {
	t.Run("without body", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.start.result = sampleOrderDTO("in_progress")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/start", nil)
		testutil.SetURLParam(c, "id", "42")
		testutil.SetAuthContext(c, 8, authorization.RoleTechnician, testutil.Uint(3))

		h.StartServiceOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), m.start.cmd.ServiceID)
		assert.Nil(t, m.start.cmd.TechnicianID)
		assert.Equal(t, uint(8), m.start.cmd.Actor.UserID)
	})

	t.Run("with technician", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.start.result = sampleOrderDTO("in_progress")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/start", map[string]any{"technician_id": 9})
		testutil.SetURLParam(c, "id", "42")

		h.StartServiceOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(9), *m.start.cmd.TechnicianID)
	})

	t.Run("invalid transition", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.start.err = errors.NewInvalidTransitionError("Cannot start a service order that is completed")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/start", nil)
		testutil.SetURLParam(c, "id", "42")

		h.StartServiceOrder(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, "Cannot start a service order that is completed", resp.Message)
	})
}

func TestServiceOrderHandler_Complete(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.complete.result = sampleOrderDTO("completed")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/complete", map[string]any{"payment_method_id": 2})
	testutil.SetURLParam(c, "id", "42")

	h.CompleteServiceOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), *m.complete.cmd.PaymentMethodID)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "completed", parseOrder(t, resp).Status.Name)
}

func TestServiceOrderHandler_Cancel(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		h, _ := newServiceOrderHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/cancel", map[string]any{})
		testutil.SetURLParam(c, "id", "42")

		h.CancelServiceOrder(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Errors, "reason")
	})

	t.Run("success", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.cancel.result = sampleOrderDTO("cancelled")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/cancel", map[string]any{"reason": "client gave up"})
		testutil.SetURLParam(c, "id", "42")

		h.CancelServiceOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "client gave up", m.cancel.cmd.Reason)
	})
}

func TestServiceOrderHandler_Items(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.addItem.result = sampleOrderDTO("pending")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/items", map[string]any{
			"product_id": 5, "quantity": 3, "discount": "1.5",
		})
		testutil.SetURLParam(c, "id", "42")

		h.AddItem(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 3, m.addItem.cmd.Quantity)
		assert.Nil(t, m.addItem.cmd.UnitPrice)
		assert.Equal(t, "1.5", m.addItem.cmd.Discount.String())
	})

	t.Run("add to locked order", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.addItem.err = errors.NewValidationError("Items cannot be changed on a completed service order")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/services/42/items", map[string]any{"quantity": 1, "unit_price": 10})
		testutil.SetURLParam(c, "id", "42")

		h.AddItem(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		h, m := newServiceOrderHandler()
		m.removeItem.result = sampleOrderDTO("pending")

		c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/services/42/items/77", nil)
		testutil.SetURLParam(c, "id", "42")
		testutil.SetURLParam(c, "itemId", "77")

		h.RemoveItem(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(77), m.removeItem.cmd.ItemID)
	})
}

func TestServiceOrderHandler_Statistics(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.stats.result = &dto.StatisticsDTO{Total: 5, Completed: 2, Revenue: "430.00"}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/statistics", nil)
	testutil.SetQueryParams(c, map[string]string{"service_center_id": "3"})
	testutil.SetAuthContext(c, 1, authorization.RoleManager, testutil.Uint(3))

	h.GetStatistics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), *m.stats.query.ServiceCenterID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var stats dto.StatisticsDTO
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, "430.00", stats.Revenue)
}

func TestServiceOrderHandler_Export(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.export.result = &usecases.ExportServiceOrdersResult{
		Filename:  "service-orders-20240310.xlsx",
		Content:   []byte("PK\x03\x04"),
		Rows:      5000,
		Total:     6200,
		Truncated: true,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/export", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "completed"})

	h.ExportServiceOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="service-orders-20240310.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "true", w.Header().Get("X-Export-Truncated"))
	assert.Equal(t, "5000", w.Header().Get("X-Export-Rows"))
	assert.Equal(t, "completed", m.export.query.Status)
	assert.Equal(t, []byte("PK\x03\x04"), w.Body.Bytes())
}

func TestServiceOrderHandler_InternalErrorIsOpaque(t *testing.T) {
	h, m := newServiceOrderHandler()
	m.get.err = context.DeadlineExceeded

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/services/1", nil)
	testutil.SetURLParam(c, "id", "1")

	h.GetServiceOrder(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadline")
}
