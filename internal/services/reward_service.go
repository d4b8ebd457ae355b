package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"
)

// --- Custom Service Errors for Rewards ---
var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardAlreadyEarned = errors.New("reward has already been earned")
	ErrRewardValidation    = errors.New("reward data validation error")
)

const DefaultPointsRequired = 10

// InsufficientPointsError reports a failed claim together with the point
// counts, so the client can show how far the child still has to go.
type InsufficientPointsError struct {
	Required int
	Current  int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: %d required, %d earned", e.Required, e.Current)
}

// --- Reward DTOs ---
type CreateRewardRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    *string `json:"description"`
	PointsRequired *int    `json:"points_required"`
}

type UpdateRewardRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	PointsRequired *int    `json:"points_required"`
}

// --- RewardService Interface ---
type RewardService interface {
	CreateReward(childID string, req CreateRewardRequest) (*models.Reward, error)
	GetRewardsByChild(childID string) ([]models.Reward, error)
	UpdateReward(rewardID string, req UpdateRewardRequest) (*models.Reward, error)
	ClaimReward(rewardID string) (*models.Reward, error)
}

// --- rewardService Implementation ---
type rewardService struct {
	rewardRepo   repositories.RewardRepository
	brushingRepo repositories.BrushingRepository
	childRepo    repositories.ChildRepository
	db           *sql.DB // for managing the claim transaction
	now          func() time.Time
}

// NewRewardService creates a new instance of RewardService.
func NewRewardService(
	rewardRepo repositories.RewardRepository,
	brushingRepo repositories.BrushingRepository,
	childRepo repositories.ChildRepository,
	db *sql.DB,
) RewardService {
	return &rewardService{
		rewardRepo:   rewardRepo,
		brushingRepo: brushingRepo,
		childRepo:    childRepo,
		db:           db,
		now:          time.Now,
	}
}

func (s *rewardService) CreateReward(childID string, req CreateRewardRequest) (*models.Reward, error) {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to resolve child for reward creation: %w", err)
	}

	if utils.IsEmpty(req.Title) {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrRewardValidation)
	}
	pointsRequired := DefaultPointsRequired
	if req.PointsRequired != nil {
		pointsRequired = *req.PointsRequired
	}
	if pointsRequired <= 0 {
		return nil, fmt.Errorf("%w: points required must be positive", ErrRewardValidation)
	}

	reward := &models.Reward{
		ChildID:        childID,
		Title:          req.Title,
		Description:    req.Description,
		PointsRequired: pointsRequired,
	}
	if err := s.rewardRepo.CreateReward(s.db, reward); err != nil {
		return nil, fmt.Errorf("failed to create reward in repository: %w", err)
	}
	return reward, nil
}

func (s *rewardService) GetRewardsByChild(childID string) ([]models.Reward, error) {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to resolve child for reward listing: %w", err)
	}

	rewards, err := s.rewardRepo.GetRewardsByChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards: %w", err)
	}
	return rewards, nil
}

func (s *rewardService) UpdateReward(rewardID string, req UpdateRewardRequest) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetRewardByID(rewardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to find reward for update: %w", err)
	}

	if req.Title != nil {
		reward.Title = *req.Title
	}
	if req.Description != nil {
		reward.Description = req.Description
	}
	if req.PointsRequired != nil {
		reward.PointsRequired = *req.PointsRequired
	}
	if utils.IsEmpty(reward.Title) {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrRewardValidation)
	}
	if reward.PointsRequired <= 0 {
		return nil, fmt.Errorf("%w: points required must be positive", ErrRewardValidation)
	}

	if err := s.rewardRepo.UpdateReward(s.db, reward); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to update reward in repository: %w", err)
	}
	return reward, nil
}

// ClaimReward marks a reward earned if the child's brushing count covers the
// required points (1 record = 1 point). The whole read-check-write runs in a
// single transaction with the reward row locked, so concurrent claims cannot
// both succeed.
func (s *rewardService) ClaimReward(rewardID string) (*models.Reward, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reward, err := s.claimWithin(tx, rewardID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reward claim: %w", err)
	}
	return reward, nil
}

// claimWithin performs the claim's read-modify-write against one executor.
func (s *rewardService) claimWithin(executor repositories.SQLExecutor, rewardID string) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetRewardForUpdate(executor, rewardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to lock reward for claim: %w", err)
	}
	if reward.IsEarned {
		return nil, ErrRewardAlreadyEarned
	}

	points, err := s.brushingRepo.CountByChild(executor, reward.ChildID)
	if err != nil {
		return nil, fmt.Errorf("failed to count points for claim: %w", err)
	}
	if points < reward.PointsRequired {
		return nil, &InsufficientPointsError{Required: reward.PointsRequired, Current: points}
	}

	earnedAt := s.now().UTC()
	if err := s.rewardRepo.MarkEarned(executor, rewardID, earnedAt); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The guarded update found no unearned row, meaning another
			// transaction won the race despite the lock.
			return nil, ErrRewardAlreadyEarned
		}
		return nil, fmt.Errorf("failed to mark reward earned: %w", err)
	}

	reward.IsEarned = true
	reward.EarnedAt = &earnedAt
	return reward, nil
}
