package callerid

import (
	"net/http"

	"github.com/gin-gonic/gin"

	calleridapp "centrex/internal/application/callerid"
	"centrex/internal/interfaces/http/middleware"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/id"
	"centrex/internal/shared/logger"
	"centrex/internal/shared/utils"
)

type CallerIDHandler struct {
	service *calleridapp.Service
	logger  logger.Interface
}

func NewCallerIDHandler(service *calleridapp.Service) *CallerIDHandler {
	return &CallerIDHandler{
		service: service,
		logger:  logger.NewLogger(),
	}
}

type CreateCallerIDRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Channels    int    `json:"channels" binding:"required,min=1,max=100"`
}

type UpdateCallerIDRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Channels    int    `json:"channels" binding:"required,min=1,max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateCallerID handles POST /caller-ids
func (h *CallerIDHandler) CreateCallerID(c *gin.Context) {
	var req CreateCallerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.service.Create(c.Request.Context(), calleridapp.CreateCallerIDCommand{
		MerchantNumber: middleware.MerchantNumber(c),
		PhoneNumber:    req.PhoneNumber,
		DisplayName:    req.DisplayName,
		Channels:       req.Channels,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Caller ID created successfully")
}

// UpdateCallerID handles PUT /caller-ids/:id
func (h *CallerIDHandler) UpdateCallerID(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixCallerID, "caller ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCallerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.service.Update(c.Request.Context(), calleridapp.UpdateCallerIDCommand{
		SID:            sid,
		MerchantNumber: middleware.MerchantNumber(c),
		DisplayName:    req.DisplayName,
		Channels:       req.Channels,
		Status:         req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Caller ID updated successfully", result)
}

// DeleteCallerID handles DELETE /caller-ids/:id
func (h *CallerIDHandler) DeleteCallerID(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixCallerID, "caller ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), sid, middleware.MerchantNumber(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetCallerID handles GET /caller-ids/:id
func (h *CallerIDHandler) GetCallerID(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixCallerID, "caller ID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), sid, middleware.MerchantNumber(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListCallerIDs handles GET /caller-ids
func (h *CallerIDHandler) ListCallerIDs(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), middleware.MerchantNumber(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
