package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"garage/internal/application/serviceorder/usecases"
	"garage/internal/shared/constants"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

// ServiceOrderUseCases groups the executors behind ServiceOrderHandler.
type ServiceOrderUseCases struct {
	Create     usecases.CreateServiceOrderExecutor
	Get        usecases.GetServiceOrderExecutor
	List       usecases.ListServiceOrdersExecutor
	Update     usecases.UpdateServiceOrderExecutor
	Delete     usecases.DeleteServiceOrderExecutor
	Start      usecases.StartServiceOrderExecutor
	Complete   usecases.CompleteServiceOrderExecutor
	Cancel     usecases.CancelServiceOrderExecutor
	AddItem    usecases.AddItemExecutor
	RemoveItem usecases.RemoveItemExecutor
	Statistics usecases.GetStatisticsExecutor
	Export     usecases.ExportServiceOrdersExecutor
}

type ServiceOrderHandler struct {
	uc             ServiceOrderUseCases
	defaultPerPage int
	logger         logger.Interface
}

func NewServiceOrderHandler(uc ServiceOrderUseCases, defaultPerPage int, logger logger.Interface) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		uc:             uc,
		defaultPerPage: defaultPerPage,
		logger:         logger,
	}
}

func (h *ServiceOrderHandler) CreateServiceOrder(c *gin.Context) {
	var req CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create service order", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	scheduled, err := parseDateTimeField("scheduled_date", req.ScheduledDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateServiceOrderCommand{
		ClientID:         req.ClientID,
		VehicleID:        req.VehicleID,
		ServiceCenterID:  req.ServiceCenterID,
		TechnicianID:     req.TechnicianID,
		AttendantID:      req.AttendantID,
		PaymentMethodID:  req.PaymentMethodID,
		ScheduledDate:    scheduled,
		Description:      req.Description,
		Complaint:        req.Complaint,
		Diagnosis:        req.Diagnosis,
		Solution:         req.Solution,
		Observations:     req.Observations,
		InternalNotes:    req.InternalNotes,
		LaborCost:        decimalOrZero(req.LaborCost),
		Discount:         decimalOrZero(req.Discount),
		MileageAtService: req.MileageAtService,
		FuelLevel:        req.FuelLevel,
		Priority:         req.Priority,
		WarrantyMonths:   req.WarrantyMonths,
		Items:            toItemInputs(req.Items),
		Actor:            actorFromContext(c),
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service order created successfully")
}

func (h *ServiceOrderHandler) GetServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetServiceOrderQuery{
		ServiceID: serviceID,
		Actor:     actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order retrieved successfully", result)
}

func (h *ServiceOrderHandler) ListServiceOrders(c *gin.Context) {
	query, err := h.parseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage, "Service orders retrieved successfully")
}

func (h *ServiceOrderHandler) UpdateServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update service order",
			"service_id", serviceID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	scheduled, err := parseDateTimeField("scheduled_date", req.ScheduledDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateServiceOrderCommand{
		ServiceID:        serviceID,
		ClientID:         req.ClientID,
		VehicleID:        req.VehicleID,
		ServiceCenterID:  req.ServiceCenterID,
		TechnicianID:     req.TechnicianID,
		AttendantID:      req.AttendantID,
		PaymentMethodID:  req.PaymentMethodID,
		ScheduledDate:    scheduled,
		Description:      req.Description,
		Complaint:        req.Complaint,
		Diagnosis:        req.Diagnosis,
		Solution:         req.Solution,
		Observations:     req.Observations,
		InternalNotes:    req.InternalNotes,
		LaborCost:        req.LaborCost,
		Discount:         req.Discount,
		MileageAtService: req.MileageAtService,
		FuelLevel:        req.FuelLevel,
		Priority:         req.Priority,
		WarrantyMonths:   req.WarrantyMonths,
		Actor:            actorFromContext(c),
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order updated successfully", result)
}

func (h *ServiceOrderHandler) DeleteServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteServiceOrderCommand{
		ServiceID: serviceID,
		Actor:     actorFromContext(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order deleted successfully", nil)
}

func (h *ServiceOrderHandler) StartServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req StartServiceOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.uc.Start.Execute(c.Request.Context(), usecases.StartServiceOrderCommand{
		ServiceID:    serviceID,
		TechnicianID: req.TechnicianID,
		Actor:        actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order started successfully", result)
}

func (h *ServiceOrderHandler) CompleteServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteServiceOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.uc.Complete.Execute(c.Request.Context(), usecases.CompleteServiceOrderCommand{
		ServiceID:       serviceID,
		PaymentMethodID: req.PaymentMethodID,
		Actor:           actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order completed successfully", result)
}

func (h *ServiceOrderHandler) CancelServiceOrder(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.uc.Cancel.Execute(c.Request.Context(), usecases.CancelServiceOrderCommand{
		ServiceID: serviceID,
		Reason:    req.Reason,
		Actor:     actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service order cancelled successfully", result)
}

func (h *ServiceOrderHandler) AddItem(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.uc.AddItem.Execute(c.Request.Context(), usecases.AddItemCommand{
		ServiceID: serviceID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Discount:  decimalOrZero(req.Discount),
		Notes:     req.Notes,
		Actor:     actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Item added successfully")
}

func (h *ServiceOrderHandler) RemoveItem(c *gin.Context) {
	serviceID, err := parseIDParam(c, "id", "service order ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	itemID, err := parseIDParam(c, "itemId", "item ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.RemoveItem.Execute(c.Request.Context(), usecases.RemoveItemCommand{
		ServiceID: serviceID,
		ItemID:    itemID,
		Actor:     actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item removed successfully", result)
}

func (h *ServiceOrderHandler) GetStatistics(c *gin.Context) {
	centerID, err := parseOptionalUintQuery(c, "service_center_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Statistics.Execute(c.Request.Context(), usecases.GetStatisticsQuery{
		ServiceCenterID: centerID,
		Actor:           actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

// ExportServiceOrders streams the filtered list as an xlsx attachment.
func (h *ServiceOrderHandler) ExportServiceOrders(c *gin.Context) {
	query, err := h.parseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Export.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Header("X-Export-Rows", strconv.Itoa(result.Rows))
	c.Header("X-Export-Total", strconv.FormatInt(result.Total, 10))
	if result.Truncated {
		c.Header("X-Export-Truncated", "true")
	}
	c.Data(http.StatusOK, constants.ContentTypeXLSX, result.Content)
}

func (h *ServiceOrderHandler) parseListQuery(c *gin.Context) (usecases.ListServiceOrdersQuery, error) {
	query := usecases.ListServiceOrdersQuery{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
		ScheduledFrom: c.Query("scheduled_from"),
		ScheduledTo:   c.Query("scheduled_to"),
		WithDeleted:   parseBoolQuery(c, "with_deleted"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		Actor:         actorFromContext(c),
	}

	pagination := utils.ParsePagination(c, h.defaultPerPage)
	query.Page = pagination.Page
	query.PerPage = pagination.PerPage

	var err error
	for key, dst := range map[string]**uint{
		"service_center_id": &query.ServiceCenterID,
		"technician_id":     &query.TechnicianID,
		"client_id":         &query.ClientID,
		"vehicle_id":        &query.VehicleID,
	} {
		if *dst, err = parseOptionalUintQuery(c, key); err != nil {
			return query, err
		}
	}

	return query, nil
}

// bindOptionalJSON accepts an empty body for endpoints whose payload is optional.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return false
	}
	return true
}
