package setting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	extensionusecases "centrex/internal/application/extension/usecases"
	settingapp "centrex/internal/application/setting"
	"centrex/internal/interfaces/http/middleware"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
	"centrex/internal/shared/utils"
)

type SettingHandler struct {
	service          *settingapp.Service
	testConnectionUC extensionusecases.TestConnectionExecutor
	logger           logger.Interface
}

func NewSettingHandler(service *settingapp.Service, testConnectionUC extensionusecases.TestConnectionExecutor) *SettingHandler {
	return &SettingHandler{
		service:          service,
		testConnectionUC: testConnectionUC,
		logger:           logger.NewLogger(),
	}
}

type UpdatePBXSettingsRequest struct {
	TokenURL     string `json:"token_url" binding:"omitempty,url"`
	MutationURL  string `json:"mutation_url" binding:"omitempty,url"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Enabled      bool   `json:"enabled"`
}

// GetPBXSettings handles GET /settings/pbx (admin only)
func (h *SettingHandler) GetPBXSettings(c *gin.Context) {
	result, err := h.service.GetPBXSettings(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePBXSettings handles PUT /settings/pbx (admin only)
func (h *SettingHandler) UpdatePBXSettings(c *gin.Context) {
	var req UpdatePBXSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	err := h.service.UpdatePBXSettings(c.Request.Context(), settingapp.UpdatePBXSettingsCommand{
		TokenURL:     req.TokenURL,
		MutationURL:  req.MutationURL,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Enabled:      req.Enabled,
		UpdatedBy:    middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "PBX sync settings updated", nil)
}

// TestConnection handles POST /settings/pbx/test (admin only)
func (h *SettingHandler) TestConnection(c *gin.Context) {
	result, err := h.testConnectionUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"ok":      result.OK,
		"message": result.Message,
	})
}
