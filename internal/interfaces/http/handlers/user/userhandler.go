package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	userapp "centrex/internal/application/user"
	"centrex/internal/interfaces/http/middleware"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
	"centrex/internal/shared/utils"
)

type UserHandler struct {
	service *userapp.Service
	logger  logger.Interface
}

func NewUserHandler(service *userapp.Service) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Name           string `json:"name" binding:"required,max=100"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required,oneof=admin operator"`
	MerchantNumber string `json:"merchant_number" binding:"required,numeric"`
}

// CreateUser handles POST /users (admin only)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.service.Create(c.Request.Context(), userapp.CreateUserCommand{
		Email:          req.Email,
		Name:           req.Name,
		Password:       req.Password,
		Role:           req.Role,
		MerchantNumber: req.MerchantNumber,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// ListUsers handles GET /users (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	users, total, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, users, total, page, pageSize)
}

// GetProfile handles GET /profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeactivateUser handles DELETE /users/:id (admin only)
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("user ID must be numeric"))
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), uint(userID)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
