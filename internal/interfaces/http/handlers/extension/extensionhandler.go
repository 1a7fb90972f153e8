package extension

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"centrex/internal/application/extension/usecases"
	"centrex/internal/interfaces/http/middleware"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/id"
	"centrex/internal/shared/logger"
	"centrex/internal/shared/utils"
)

type ExtensionHandler struct {
	createExtensionUC usecases.CreateExtensionExecutor
	updateExtensionUC usecases.UpdateExtensionExecutor
	deleteExtensionUC usecases.DeleteExtensionExecutor
	getExtensionUC    usecases.GetExtensionExecutor
	listExtensionsUC  usecases.ListExtensionsExecutor
	logger            logger.Interface
}

func NewExtensionHandler(
	createExtensionUC usecases.CreateExtensionExecutor,
	updateExtensionUC usecases.UpdateExtensionExecutor,
	deleteExtensionUC usecases.DeleteExtensionExecutor,
	getExtensionUC usecases.GetExtensionExecutor,
	listExtensionsUC usecases.ListExtensionsExecutor,
) *ExtensionHandler {
	return &ExtensionHandler{
		createExtensionUC: createExtensionUC,
		updateExtensionUC: updateExtensionUC,
		deleteExtensionUC: deleteExtensionUC,
		getExtensionUC:    getExtensionUC,
		listExtensionsUC:  listExtensionsUC,
		logger:            logger.NewLogger(),
	}
}

type CreateExtensionRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Technology  string `json:"technology" binding:"required,oneof=PJSIP SIP"`
	Secret      string `json:"secret"`
	CallerIDSID string `json:"caller_id_sid"`
}

type UpdateExtensionRequest struct {
	DisplayName   string `json:"display_name" binding:"omitempty,max=100"`
	Technology    string `json:"technology" binding:"omitempty,oneof=PJSIP SIP"`
	Secret        string `json:"secret"`
	CallerIDSID   string `json:"caller_id_sid"`
	ClearCallerID bool   `json:"clear_caller_id"`
	Status        string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// syncStatusMessage renders the composite provisioning outcome: full
// success versus saved-locally-only.
func syncStatusMessage(remoteSuccess bool, verb string) string {
	if remoteSuccess {
		return "Extension " + verb + " successfully"
	}
	return "Extension " + verb + " locally; remote sync failed, retry later via edit"
}

// CreateExtension handles POST /extensions
func (h *ExtensionHandler) CreateExtension(c *gin.Context) {
	var req CreateExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create extension", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createExtensionUC.Execute(c.Request.Context(), usecases.CreateExtensionCommand{
		MerchantNumber: middleware.MerchantNumber(c),
		DisplayName:    req.DisplayName,
		Technology:     req.Technology,
		Secret:         req.Secret,
		CallerIDSID:    req.CallerIDSID,
		OwnerID:        middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"extension":      result.Extension,
		"local_success":  result.LocalSuccess,
		"remote_success": result.RemoteSuccess,
	}, syncStatusMessage(result.RemoteSuccess, "created"))
}

// UpdateExtension handles PUT /extensions/:id
func (h *ExtensionHandler) UpdateExtension(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixExtension, "extension")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.updateExtensionUC.Execute(c.Request.Context(), usecases.UpdateExtensionCommand{
		SID:            sid,
		MerchantNumber: middleware.MerchantNumber(c),
		DisplayName:    req.DisplayName,
		Technology:     req.Technology,
		Secret:         req.Secret,
		CallerIDSID:    req.CallerIDSID,
		ClearCallerID:  req.ClearCallerID,
		Status:         req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, syncStatusMessage(result.RemoteSuccess, "updated"), gin.H{
		"extension":      result.Extension,
		"local_success":  result.LocalSuccess,
		"remote_success": result.RemoteSuccess,
	})
}

// DeleteExtension handles DELETE /extensions/:id
func (h *ExtensionHandler) DeleteExtension(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixExtension, "extension")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteExtensionUC.Execute(c.Request.Context(), usecases.DeleteExtensionCommand{
		SID:            sid,
		MerchantNumber: middleware.MerchantNumber(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, syncStatusMessage(result.RemoteSuccess, "deleted"), gin.H{
		"local_success":  result.LocalSuccess,
		"remote_success": result.RemoteSuccess,
	})
}

// GetExtension handles GET /extensions/:id
func (h *ExtensionHandler) GetExtension(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixExtension, "extension")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getExtensionUC.Execute(c.Request.Context(), usecases.GetExtensionQuery{
		SID:            sid,
		MerchantNumber: middleware.MerchantNumber(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListExtensions handles GET /extensions
func (h *ExtensionHandler) ListExtensions(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	query := usecases.ListExtensionsQuery{
		MerchantNumber: middleware.MerchantNumber(c),
		Status:         c.Query("status"),
		Page:           page,
		PageSize:       pageSize,
	}
	if ownerStr := c.Query("owner_id"); ownerStr != "" {
		ownerID, err := strconv.ParseUint(ownerStr, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("owner_id must be numeric"))
			return
		}
		owner := uint(ownerID)
		query.OwnerID = &owner
	}

	result, err := h.listExtensionsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Extensions, result.Total, result.Page, result.PageSize)
}
