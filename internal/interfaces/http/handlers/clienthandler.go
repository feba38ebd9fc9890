package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"garage/internal/application/client/usecases"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

type ClientHandler struct {
	createClientUC  createClientUseCase
	getClientUC     getClientUseCase
	listClientsUC   listClientsUseCase
	deleteClientUC  deleteClientUseCase
	createVehicleUC createVehicleUseCase
	getVehicleUC    getVehicleUseCase
	defaultPerPage  int
	logger          logger.Interface
}

func NewClientHandler(
	createClientUC createClientUseCase,
	getClientUC getClientUseCase,
	listClientsUC listClientsUseCase,
	deleteClientUC deleteClientUseCase,
	createVehicleUC createVehicleUseCase,
	getVehicleUC getVehicleUseCase,
	defaultPerPage int,
	logger logger.Interface,
) *ClientHandler {
	return &ClientHandler{
		createClientUC:  createClientUC,
		getClientUC:     getClientUC,
		listClientsUC:   listClientsUC,
		deleteClientUC:  deleteClientUC,
		createVehicleUC: createVehicleUC,
		getVehicleUC:    getVehicleUC,
		defaultPerPage:  defaultPerPage,
		logger:          logger,
	}
}

type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    string  `json:"phone" binding:"required,max=30"`
	Document string  `json:"document" binding:"required,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Notes    *string `json:"notes" binding:"omitempty,max=5000"`
}

type CreateVehicleRequest struct {
	Plate   string  `json:"plate" binding:"required,max=10"`
	Brand   string  `json:"brand" binding:"required,max=100"`
	Model   string  `json:"model" binding:"required,max=100"`
	Year    *int    `json:"year" binding:"omitempty,min=1900,max=2100"`
	Color   *string `json:"color" binding:"omitempty,max=50"`
	Mileage int     `json:"mileage" binding:"min=0"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create client", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createClientUC.Execute(c.Request.Context(), usecases.CreateClientCommand{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		Notes:    req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "id", "client ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getClientUC.Execute(c.Request.Context(), clientID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client retrieved successfully", result)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	pagination := utils.ParsePagination(c, h.defaultPerPage)

	result, err := h.listClientsUC.Execute(c.Request.Context(), usecases.ListClientsQuery{
		Search:  c.Query("search"),
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PerPage, "Clients retrieved successfully")
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "id", "client ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteClientUC.Execute(c.Request.Context(), clientID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client deleted successfully", nil)
}

func (h *ClientHandler) CreateVehicle(c *gin.Context) {
	clientID, err := parseIDParam(c, "id", "client ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create vehicle", "client_id", clientID, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createVehicleUC.Execute(c.Request.Context(), usecases.CreateVehicleCommand{
		ClientID: clientID,
		Plate:    req.Plate,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		Mileage:  req.Mileage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Vehicle created successfully")
}

func (h *ClientHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := parseIDParam(c, "id", "vehicle ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getVehicleUC.Execute(c.Request.Context(), vehicleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", result)
}
