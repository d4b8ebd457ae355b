package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReminderHandler holds the reminder service.
type ReminderHandler struct {
	reminderService services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(rs services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: rs}
}

// GetReminder handles fetching a child's reminder setting.
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	childID := c.Param("id")

	setting, err := h.reminderService.GetReminder(childID)
	if err != nil {
		utils.LogError(err, "GetReminder: Error from reminderService.GetReminder for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrReminderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No reminder setting configured for this child.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reminder setting.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// PutReminder handles creating or replacing a child's reminder setting.
func (h *ReminderHandler) PutReminder(c *gin.Context) {
	childID := c.Param("id")

	var req services.PutReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	setting, err := h.reminderService.PutReminder(childID, req)
	if err != nil {
		utils.LogError(err, "PutReminder: Error from reminderService.PutReminder for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrReminderValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save reminder setting.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}
