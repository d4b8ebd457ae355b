package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"
)

// --- Custom Service Errors for Parent ---
var (
	ErrParentNotFound   = errors.New("parent not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrParentValidation = errors.New("parent data validation error")
)

// --- Parent DTOs ---
type CreateParentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// --- ParentService Interface ---
type ParentService interface {
	CreateParent(req CreateParentRequest) (*models.Parent, error)
	GetParentByID(parentID string) (*models.Parent, error)
	GetParents() ([]models.Parent, error)
	DeleteParent(parentID string) error
}

// --- parentService Implementation ---
type parentService struct {
	parentRepo   repositories.ParentRepository
	childRepo    repositories.ChildRepository
	brushingRepo repositories.BrushingRepository
	rewardRepo   repositories.RewardRepository
	reminderRepo repositories.ReminderRepository
	avatarRepo   repositories.AvatarRepository
	usageRepo    repositories.UsageRepository
	db           *sql.DB // for managing the cascade-delete transaction
}

// NewParentService creates a new instance of ParentService.
func NewParentService(
	parentRepo repositories.ParentRepository,
	childRepo repositories.ChildRepository,
	brushingRepo repositories.BrushingRepository,
	rewardRepo repositories.RewardRepository,
	reminderRepo repositories.ReminderRepository,
	avatarRepo repositories.AvatarRepository,
	usageRepo repositories.UsageRepository,
	db *sql.DB,
) ParentService {
	return &parentService{
		parentRepo:   parentRepo,
		childRepo:    childRepo,
		brushingRepo: brushingRepo,
		rewardRepo:   rewardRepo,
		reminderRepo: reminderRepo,
		avatarRepo:   avatarRepo,
		usageRepo:    usageRepo,
		db:           db,
	}
}

func (s *parentService) CreateParent(req CreateParentRequest) (*models.Parent, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrParentValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrParentValidation)
	}

	// Pre-check for a friendlier error; the unique index is the real guard.
	existing, err := s.parentRepo.GetParentByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	parent := &models.Parent{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}
	if err := s.parentRepo.CreateParent(s.db, parent); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create parent in repository: %w", err)
	}
	return s.parentRepo.GetParentByID(parent.ID)
}

func (s *parentService) GetParentByID(parentID string) (*models.Parent, error) {
	parent, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get parent by ID: %w", err)
	}
	return parent, nil
}

func (s *parentService) GetParents() ([]models.Parent, error) {
	parents, err := s.parentRepo.GetParents()
	if err != nil {
		return nil, fmt.Errorf("failed to get parents: %w", err)
	}
	return parents, nil
}

// DeleteParent removes a parent and the full closure of its dependents
// (children, their brushing records, rewards, reminder settings, avatars,
// and the parent's usage log) in a single transaction.
func (s *parentService) DeleteParent(parentID string) error {
	_, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrParentNotFound
		}
		return fmt.Errorf("failed to find parent for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteParentWithin(tx, parentID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit parent deletion: %w", err)
	}
	return nil
}

// deleteParentWithin issues the cascade deletes against one executor.
// Dependents go first so the child and parent rows delete cleanly.
func (s *parentService) deleteParentWithin(executor repositories.SQLExecutor, parentID string) error {
	if err := s.brushingRepo.DeleteByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete brushing records: %w", err)
	}
	if err := s.rewardRepo.DeleteByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete rewards: %w", err)
	}
	if err := s.reminderRepo.DeleteByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete reminder settings: %w", err)
	}
	if err := s.avatarRepo.DeleteByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete avatars: %w", err)
	}
	if err := s.usageRepo.DeleteByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete app usage log: %w", err)
	}
	if err := s.childRepo.DeleteChildrenByParent(executor, parentID); err != nil {
		return fmt.Errorf("failed to delete children: %w", err)
	}
	if err := s.parentRepo.DeleteParent(executor, parentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrParentNotFound
		}
		return fmt.Errorf("failed to delete parent: %w", err)
	}
	return nil
}
