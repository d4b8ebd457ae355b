package services

import (
	"database/sql"
	"errors"
	"fmt"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
)

// --- Usage DTOs ---
type LogUsageRequest struct {
	ParentID   string  `json:"parent_id" binding:"required"`
	Platform   *string `json:"platform"`
	AppVersion *string `json:"app_version"`
}

// --- UsageService Interface ---
type UsageService interface {
	LogUsage(req LogUsageRequest) (*models.AppUsage, error)
	GetUsageByParent(parentID string) ([]models.AppUsage, error)
}

// --- usageService Implementation ---
type usageService struct {
	usageRepo  repositories.UsageRepository
	parentRepo repositories.ParentRepository
	db         *sql.DB
}

// NewUsageService creates a new instance of UsageService.
func NewUsageService(usageRepo repositories.UsageRepository, parentRepo repositories.ParentRepository, db *sql.DB) UsageService {
	return &usageService{
		usageRepo:  usageRepo,
		parentRepo: parentRepo,
		db:         db,
	}
}

func (s *usageService) LogUsage(req LogUsageRequest) (*models.AppUsage, error) {
	_, err := s.parentRepo.GetParentByID(req.ParentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to resolve parent for usage log: %w", err)
	}

	usage := &models.AppUsage{
		ParentID:   req.ParentID,
		Platform:   req.Platform,
		AppVersion: req.AppVersion,
	}
	if err := s.usageRepo.CreateUsage(s.db, usage); err != nil {
		return nil, fmt.Errorf("failed to create usage entry: %w", err)
	}
	return usage, nil
}

func (s *usageService) GetUsageByParent(parentID string) ([]models.AppUsage, error) {
	_, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to resolve parent for usage listing: %w", err)
	}

	entries, err := s.usageRepo.GetByParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage entries: %w", err)
	}
	return entries, nil
}
