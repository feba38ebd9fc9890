package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"garage/internal/application/user/usecases"
	"garage/internal/shared/constants"
	"garage/internal/shared/logger"
	"garage/internal/shared/utils"
)

type AuthHandler struct {
	loginUC          loginUseCase
	getCurrentUserUC getCurrentUserUseCase
	logger           logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, getCurrentUserUC getCurrentUserUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:          loginUC,
		getCurrentUserUC: getCurrentUserUC,
		logger:           logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnw("login failed", "client_ip", c.ClientIP(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	if userID == 0 {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", result)
}
