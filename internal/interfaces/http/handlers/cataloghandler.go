package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"garage/internal/application/catalog/usecases"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

// CatalogHandler serves service centers, products and the read-only
// reference lists.
type CatalogHandler struct {
	createCenterUC  createServiceCenterUseCase
	listCentersUC   listServiceCentersUseCase
	nearbyUC        findNearbyServiceCentersUseCase
	createProductUC createProductUseCase
	listProductsUC  listProductsUseCase
	listPaymentsUC  listPaymentMethodsUseCase
	listStatusesUC  listStatusesUseCase
	defaultPerPage  int
	logger          logger.Interface
}

func NewCatalogHandler(
	createCenterUC createServiceCenterUseCase,
	listCentersUC listServiceCentersUseCase,
	nearbyUC findNearbyServiceCentersUseCase,
	createProductUC createProductUseCase,
	listProductsUC listProductsUseCase,
	listPaymentsUC listPaymentMethodsUseCase,
	listStatusesUC listStatusesUseCase,
	defaultPerPage int,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		createCenterUC:  createCenterUC,
		listCentersUC:   listCentersUC,
		nearbyUC:        nearbyUC,
		createProductUC: createProductUC,
		listProductsUC:  listProductsUC,
		listPaymentsUC:  listPaymentsUC,
		listStatusesUC:  listStatusesUC,
		defaultPerPage:  defaultPerPage,
		logger:          logger,
	}
}

type CreateServiceCenterRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Code      string   `json:"code" binding:"required,max=20"`
	Address   *string  `json:"address" binding:"omitempty,max=500"`
	City      *string  `json:"city" binding:"omitempty,max=100"`
	State     *string  `json:"state" binding:"omitempty,max=50"`
	Phone     *string  `json:"phone" binding:"omitempty,max=30"`
	Email     *string  `json:"email" binding:"omitempty,email,max=255"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	SKU           string          `json:"sku" binding:"required,max=50"`
	Description   *string         `json:"description" binding:"omitempty,max=5000"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	MinStock      int             `json:"min_stock" binding:"min=0"`
	Unit          string          `json:"unit" binding:"omitempty,max=20"`
}

func (h *CatalogHandler) CreateServiceCenter(c *gin.Context) {
	var req CreateServiceCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create service center", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createCenterUC.Execute(c.Request.Context(), usecases.CreateServiceCenterCommand{
		Name:      req.Name,
		Code:      req.Code,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Phone:     req.Phone,
		Email:     req.Email,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service center created successfully")
}

// ListServiceCenters returns active centers unless include_inactive=true.
func (h *CatalogHandler) ListServiceCenters(c *gin.Context) {
	result, err := h.listCentersUC.Execute(c.Request.Context(), !parseBoolQuery(c, "include_inactive"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service centers retrieved successfully", result)
}

func (h *CatalogHandler) FindNearbyServiceCenters(c *gin.Context) {
	lat, err := parseOptionalFloatQuery(c, "lat")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	lng, err := parseOptionalFloatQuery(c, "lng")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.FindNearbyQuery{Latitude: lat, Longitude: lng}
	if raw := c.Query("radius_km"); raw != "" {
		if query.RadiusKm, err = strconv.ParseFloat(raw, 64); err != nil {
			utils.ErrorResponseWithError(c, errors.NewFieldValidationError("radius_km", "radius_km must be a number"))
			return
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if query.Limit, err = strconv.Atoi(raw); err != nil {
			utils.ErrorResponseWithError(c, errors.NewFieldValidationError("limit", "limit must be an integer"))
			return
		}
	}

	result, err := h.nearbyUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Nearby service centers retrieved successfully", result)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create product", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createProductUC.Execute(c.Request.Context(), usecases.CreateProductCommand{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Unit:          req.Unit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Product created successfully")
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	pagination := utils.ParsePagination(c, h.defaultPerPage)

	result, err := h.listProductsUC.Execute(c.Request.Context(), usecases.ListProductsQuery{
		Search:     c.Query("search"),
		ActiveOnly: !parseBoolQuery(c, "include_inactive"),
		LowStock:   parseBoolQuery(c, "low_stock"),
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage, "Products retrieved successfully")
}

func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	result, err := h.listPaymentsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment methods retrieved successfully", result)
}

func (h *CatalogHandler) ListServiceStatuses(c *gin.Context) {
	result, err := h.listStatusesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service statuses retrieved successfully", result)
}
