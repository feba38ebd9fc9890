package handlers

import (
	"github.com/gin-gonic/gin"

	"garage/internal/application/user/usecases"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

type UserHandler struct {
	createUserUC createUserUseCase
	logger       logger.Interface
}

func NewUserHandler(createUserUC createUserUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		createUserUC: createUserUC,
		logger:       logger,
	}
}

type CreateUserRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	Role            string `json:"role" binding:"required,oneof=admin manager attendant technician"`
	ServiceCenterID *uint  `json:"service_center_id" binding:"omitempty,min=1"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		ServiceCenterID: req.ServiceCenterID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}
