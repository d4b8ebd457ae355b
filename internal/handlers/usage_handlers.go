package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UsageHandler holds the usage service.
type UsageHandler struct {
	usageService services.UsageService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(us services.UsageService) *UsageHandler {
	return &UsageHandler{usageService: us}
}

// LogUsage handles appending an app usage entry.
func (h *UsageHandler) LogUsage(c *gin.Context) {
	var req services.LogUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	usage, err := h.usageService.LogUsage(req)
	if err != nil {
		utils.LogError(err, "LogUsage: Error from usageService.LogUsage")
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log usage.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, usage)
}

// GetUsage handles listing a parent's usage entries.
func (h *UsageHandler) GetUsage(c *gin.Context) {
	parentID := c.Param("id")

	entries, err := h.usageService.GetUsageByParent(parentID)
	if err != nil {
		utils.LogError(err, "GetUsage: Error from usageService.GetUsageByParent for parent "+parentID)
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch usage entries.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, entries)
}
