package services

import (
	"database/sql"
	"errors"
	"fmt"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"
)

// --- Custom Service Errors for Child ---
var (
	ErrChildNotFound   = errors.New("child not found")
	ErrChildValidation = errors.New("child data validation error")
)

// --- Child DTOs ---
type CreateChildRequest struct {
	Name string `json:"name" binding:"required"`
	Age  *int   `json:"age" binding:"required"`
}

type UpdateChildRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// --- ChildService Interface ---
type ChildService interface {
	CreateChild(parentID string, req CreateChildRequest) (*models.Child, error)
	GetChildByID(childID string) (*models.Child, error)
	GetChildrenByParent(parentID string) ([]models.Child, error)
	UpdateChild(childID string, req UpdateChildRequest) (*models.Child, error)
	DeleteChild(childID string) error
}

// --- childService Implementation ---
type childService struct {
	childRepo    repositories.ChildRepository
	parentRepo   repositories.ParentRepository
	brushingRepo repositories.BrushingRepository
	rewardRepo   repositories.RewardRepository
	reminderRepo repositories.ReminderRepository
	avatarRepo   repositories.AvatarRepository
	db           *sql.DB
}

// NewChildService creates a new instance of ChildService.
func NewChildService(
	childRepo repositories.ChildRepository,
	parentRepo repositories.ParentRepository,
	brushingRepo repositories.BrushingRepository,
	rewardRepo repositories.RewardRepository,
	reminderRepo repositories.ReminderRepository,
	avatarRepo repositories.AvatarRepository,
	db *sql.DB,
) ChildService {
	return &childService{
		childRepo:    childRepo,
		parentRepo:   parentRepo,
		brushingRepo: brushingRepo,
		rewardRepo:   rewardRepo,
		reminderRepo: reminderRepo,
		avatarRepo:   avatarRepo,
		db:           db,
	}
}

func validateChildFields(name string, age int) error {
	if utils.IsEmpty(name) {
		return fmt.Errorf("%w: name cannot be empty", ErrChildValidation)
	}
	if age < 0 {
		return fmt.Errorf("%w: age cannot be negative", ErrChildValidation)
	}
	return nil
}

func (s *childService) CreateChild(parentID string, req CreateChildRequest) (*models.Child, error) {
	_, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to resolve parent for child creation: %w", err)
	}

	if req.Age == nil {
		return nil, fmt.Errorf("%w: age is required", ErrChildValidation)
	}
	if err := validateChildFields(req.Name, *req.Age); err != nil {
		return nil, err
	}

	child := &models.Child{
		ParentID: parentID,
		Name:     req.Name,
		Age:      *req.Age,
	}
	if err := s.childRepo.CreateChild(s.db, child); err != nil {
		return nil, fmt.Errorf("failed to create child in repository: %w", err)
	}
	return s.childRepo.GetChildByID(child.ID)
}

func (s *childService) GetChildByID(childID string) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get child by ID: %w", err)
	}
	return child, nil
}

func (s *childService) GetChildrenByParent(parentID string) ([]models.Child, error) {
	_, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to resolve parent for child listing: %w", err)
	}

	children, err := s.childRepo.GetChildrenByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	return children, nil
}

func (s *childService) UpdateChild(childID string, req UpdateChildRequest) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to find child for update: %w", err)
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.Age != nil {
		child.Age = *req.Age
	}
	if err := validateChildFields(child.Name, child.Age); err != nil {
		return nil, err
	}

	if err := s.childRepo.UpdateChild(s.db, child); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to update child in repository: %w", err)
	}
	return s.childRepo.GetChildByID(childID)
}

// DeleteChild removes a child and all of its dependents in a single transaction.
func (s *childService) DeleteChild(childID string) error {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to find child for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteChildWithin(tx, childID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit child deletion: %w", err)
	}
	return nil
}

// deleteChildWithin issues the cascade deletes against one executor.
func (s *childService) deleteChildWithin(executor repositories.SQLExecutor, childID string) error {
	if err := s.brushingRepo.DeleteByChild(executor, childID); err != nil {
		return fmt.Errorf("failed to delete brushing records: %w", err)
	}
	if err := s.rewardRepo.DeleteByChild(executor, childID); err != nil {
		return fmt.Errorf("failed to delete rewards: %w", err)
	}
	if err := s.reminderRepo.DeleteByChild(executor, childID); err != nil {
		return fmt.Errorf("failed to delete reminder setting: %w", err)
	}
	if err := s.avatarRepo.DeleteByChild(executor, childID); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	if err := s.childRepo.DeleteChild(executor, childID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}
