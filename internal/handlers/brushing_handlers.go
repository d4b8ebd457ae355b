package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BrushingHandler holds the brushing service.
type BrushingHandler struct {
	brushingService services.BrushingService
}

// NewBrushingHandler creates a new BrushingHandler.
func NewBrushingHandler(bs services.BrushingService) *BrushingHandler {
	return &BrushingHandler{brushingService: bs}
}

// CreateBrushingRecord handles creating a brushing record for a child.
func (h *BrushingHandler) CreateBrushingRecord(c *gin.Context) {
	childID := c.Param("id")

	var req services.CreateBrushingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.brushingService.CreateRecord(childID, req)
	if err != nil {
		utils.LogError(err, "CreateBrushingRecord: Error from brushingService.CreateRecord for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrSessionTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A record already exists for this session on this day.", err.Error()))
		} else if errors.Is(err, services.ErrBrushingValidation) || errors.Is(err, services.ErrTimestampFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create brushing record.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetBrushingRecords handles listing a child's brushing records, optionally
// bounded by start_date/end_date query parameters.
func (h *BrushingHandler) GetBrushingRecords(c *gin.Context) {
	childID := c.Param("id")

	var filters services.BrushingFilters
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := utils.ParseTimestamp(startStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start_date format.", err.Error()))
			return
		}
		filters.Start = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := utils.ParseTimestamp(endStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end_date format.", err.Error()))
			return
		}
		filters.End = &end
	}

	records, err := h.brushingService.GetRecordsByChild(childID, filters)
	if err != nil {
		utils.LogError(err, "GetBrushingRecords: Error from brushingService.GetRecordsByChild for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch brushing records.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, records)
}

// UpdateBrushingRecord handles updating a brushing record's duration, score and notes.
func (h *BrushingHandler) UpdateBrushingRecord(c *gin.Context) {
	recordID := c.Param("id")

	var req services.UpdateBrushingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.brushingService.UpdateRecord(recordID, req)
	if err != nil {
		utils.LogError(err, "UpdateBrushingRecord: Error from brushingService.UpdateRecord for ID "+recordID)
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Brushing record not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrBrushingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update brushing record.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteBrushingRecord handles deleting a single brushing record.
func (h *BrushingHandler) DeleteBrushingRecord(c *gin.Context) {
	recordID := c.Param("id")

	err := h.brushingService.DeleteRecord(recordID)
	if err != nil {
		utils.LogError(err, "DeleteBrushingRecord: Error from brushingService.DeleteRecord for ID "+recordID)
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Brushing record not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete brushing record.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brushing record deleted successfully"})
}
