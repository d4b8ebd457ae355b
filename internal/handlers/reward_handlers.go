package handlers

import (
	"errors"
	"net/http"

	"brushtrack_backend/internal/services"
	"brushtrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RewardHandler holds the reward service.
type RewardHandler struct {
	rewardService services.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rs services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rs}
}

// CreateReward handles creating a reward for a child.
func (h *RewardHandler) CreateReward(c *gin.Context) {
	childID := c.Param("id")

	var req services.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reward, err := h.rewardService.CreateReward(childID, req)
	if err != nil {
		utils.LogError(err, "CreateReward: Error from rewardService.CreateReward for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else if errors.Is(err, services.ErrRewardValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create reward.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, reward)
}

// GetRewards handles listing a child's rewards.
func (h *RewardHandler) GetRewards(c *gin.Context) {
	childID := c.Param("id")

	rewards, err := h.rewardService.GetRewardsByChild(childID)
	if err != nil {
		utils.LogError(err, "GetRewards: Error from rewardService.GetRewardsByChild for child "+childID)
		if errors.Is(err, services.ErrChildNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Child not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch rewards.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// UpdateReward handles updating a reward's title, description and threshold.
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	rewardID := c.Param("id")

	var req services.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reward, err := h.rewardService.UpdateReward(rewardID, req)
	if err != nil {
		utils.LogError(err, "UpdateReward: Error from rewardService.UpdateReward for ID "+rewardID)
		if errors.Is(err, services.ErrRewardNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reward not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrRewardValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update reward.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, reward)
}

// ClaimReward handles marking a reward as earned.
func (h *RewardHandler) ClaimReward(c *gin.Context) {
	rewardID := c.Param("id")

	reward, err := h.rewardService.ClaimReward(rewardID)
	if err != nil {
		utils.LogError(err, "ClaimReward: Error from rewardService.ClaimReward for ID "+rewardID)
		var pointsErr *services.InsufficientPointsError
		if errors.Is(err, services.ErrRewardNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reward not found.", err.Error()))
		} else if errors.Is(err, services.ErrRewardAlreadyEarned) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Reward has already been earned.", err.Error()))
		} else if errors.As(err, &pointsErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    gin.H{"code": utils.ErrCodeInsufficientPoints, "message": "Not enough points to claim this reward."},
				"required": pointsErr.Required,
				"current":  pointsErr.Current,
			})
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to claim reward.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, reward)
}
