package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AvatarHandler holds the avatar service.
type AvatarHandler struct {
	avatarService services.AvatarService
}

// NewAvatarHandler creates a new AvatarHandler.
func NewAvatarHandler(as services.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: as}
}

// GetAvatar handles fetching a child's avatar.
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	childID := c.Param("id")

	avatar, err := h.avatarService.GetAvatar(childID)
	if err != nil {
		utils.LogError(err, "GetAvatar: Error from avatarService.GetAvatar for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrAvatarNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No avatar configured for this child.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch avatar.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, avatar)
}

// PutAvatar handles creating or replacing a child's avatar.
func (h *AvatarHandler) PutAvatar(c *gin.Context) {
	childID := c.Param("id")

	var req services.PutAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	avatar, err := h.avatarService.PutAvatar(childID, req)
	if err != nil {
		utils.LogError(err, "PutAvatar: Error from avatarService.PutAvatar for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrAvatarValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save avatar.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, avatar)
}
