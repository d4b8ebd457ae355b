package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetChildStats handles the statistics endpoint for a child.
func (h *StatsHandler) GetChildStats(c *gin.Context) {
	childID := c.Param("id")

	stats, err := h.statsService.GetChildStats(childID)
	if err != nil {
		utils.LogError(err, "GetChildStats: Error from statsService.GetChildStats for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute statistics.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}
