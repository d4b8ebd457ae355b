package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ParentHandler holds the parent service.
type ParentHandler struct {
	parentService services.ParentService
}

// NewParentHandler creates a new ParentHandler.
func NewParentHandler(ps services.ParentService) *ParentHandler {
	return &ParentHandler{parentService: ps}
}

// CreateParent handles the creation of a new parent.
func (h *ParentHandler) CreateParent(c *gin.Context) {
	var req services.CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	parent, err := h.parentService.CreateParent(req)
	if err != nil {
		utils.LogError(err, "CreateParent: Error from parentService.CreateParent")
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
		} else if errors.Is(err, services.ErrParentValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create parent.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, parent)
}

// GetParents handles listing all parents.
func (h *ParentHandler) GetParents(c *gin.Context) {
	parents, err := h.parentService.GetParents()
	if err != nil {
		utils.LogError(err, "GetParents: Error from parentService.GetParents")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch parents.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, parents)
}

// GetParentByID handles fetching a single parent by ID.
func (h *ParentHandler) GetParentByID(c *gin.Context) {
	parentID := c.Param("id")

	parent, err := h.parentService.GetParentByID(parentID)
	if err != nil {
		utils.LogError(err, "GetParentByID: Error from parentService.GetParentByID for ID "+parentID)
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch parent.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, parent)
}

// DeleteParent handles deleting a parent and all of its dependents.
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	parentID := c.Param("id")

	err := h.parentService.DeleteParent(parentID)
	if err != nil {
		utils.LogError(err, "DeleteParent: Error from parentService.DeleteParent for ID "+parentID)
		if errors.Is(err, services.ErrParentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Parent not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete parent.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Parent deleted successfully"})
}
