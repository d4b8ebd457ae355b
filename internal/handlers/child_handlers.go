package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ChildHandler holds the child service.
type ChildHandler struct {
	childService services.ChildService
}

// NewChildHandler creates a new ChildHandler.
func NewChildHandler(cs services.ChildService) *ChildHandler {
	return &ChildHandler{childService: cs}
}

// CreateChild handles creating a child under a parent.
func (h *ChildHandler) CreateChild(c *gin.Context) {
	parentID := c.Param("id")

	var req services.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	child, err := h.childService.CreateChild(parentID, req)
	if err != nil {
		utils.LogError(err, "CreateChild: Error from childService.CreateChild for parent "+parentID)
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found.", err.Error()))
		} else if errors.Is(err, services.ErrChildValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create child.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, child)
}

// GetChildren handles listing a parent's children.
func (h *ChildHandler) GetChildren(c *gin.Context) {
	parentID := c.Param("id")

	children, err := h.childService.GetChildrenByParent(parentID)
	if err != nil {
		utils.LogError(err, "GetChildren: Error from childService.GetChildrenByParent for parent "+parentID)
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch children.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, children)
}

// GetChildByID handles fetching a single child by ID.
func (h *ChildHandler) GetChildByID(c *gin.Context) {
	childID := c.Param("id")

	child, err := h.childService.GetChildByID(childID)
	if err != nil {
		utils.LogError(err, "GetChildByID: Error from childService.GetChildByID for ID "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch child.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, child)
}

// UpdateChild handles updating a child's name and age.
func (h *ChildHandler) UpdateChild(c *gin.Context) {
	childID := c.Param("id")

	var req services.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	child, err := h.childService.UpdateChild(childID, req)
	if err != nil {
		utils.LogError(err, "UpdateChild: Error from childService.UpdateChild for ID "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrChildValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update child.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, child)
}

// DeleteChild handles deleting a child and all of its dependents.
func (h *ChildHandler) DeleteChild(c *gin.Context) {
	childID := c.Param("id")

	err := h.childService.DeleteChild(childID)
	if err != nil {
		utils.LogError(err, "DeleteChild: Error from childService.DeleteChild for ID "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete child.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Child deleted successfully"})
}
