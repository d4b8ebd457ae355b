package services

import (
	"database/sql"
	"errors"
	"fmt"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"
)

// --- Custom Service Errors for Reminder Settings ---
var (
	ErrReminderNotFound   = errors.New("reminder setting not found")
	ErrReminderValidation = errors.New("reminder setting validation error")
)

// --- Reminder DTOs ---
type PutReminderRequest struct {
	MorningTime    string `json:"morning_time" binding:"required"`
	EveningTime    string `json:"evening_time" binding:"required"`
	MorningEnabled *bool  `json:"morning_enabled"`
	EveningEnabled *bool  `json:"evening_enabled"`
}

// --- ReminderService Interface ---
type ReminderService interface {
	GetReminder(childID string) (*models.ReminderSetting, error)
	PutReminder(childID string, req PutReminderRequest) (*models.ReminderSetting, error)
}

// --- reminderService Implementation ---
type reminderService struct {
	reminderRepo repositories.ReminderRepository
	childRepo    repositories.ChildRepository
	db           *sql.DB
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(reminderRepo repositories.ReminderRepository, childRepo repositories.ChildRepository, db *sql.DB) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		childRepo:    childRepo,
		db:           db,
	}
}

func (s *reminderService) GetReminder(childID string) (*models.ReminderSetting, error) {
	if err := s.resolveChild(childID); err != nil {
		return nil, err
	}
	setting, err := s.reminderRepo.GetByChild(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to get reminder setting: %w", err)
	}
	return setting, nil
}

// PutReminder creates or replaces the child's single reminder setting.
func (s *reminderService) PutReminder(childID string, req PutReminderRequest) (*models.ReminderSetting, error) {
	if err := s.resolveChild(childID); err != nil {
		return nil, err
	}
	if !utils.IsValidClock(req.MorningTime) {
		return nil, fmt.Errorf("%w: morning_time must be HH:MM", ErrReminderValidation)
	}
	if !utils.IsValidClock(req.EveningTime) {
		return nil, fmt.Errorf("%w: evening_time must be HH:MM", ErrReminderValidation)
	}

	setting := &models.ReminderSetting{
		ChildID:        childID,
		MorningTime:    req.MorningTime,
		EveningTime:    req.EveningTime,
		MorningEnabled: true,
		EveningEnabled: true,
	}
	if req.MorningEnabled != nil {
		setting.MorningEnabled = *req.MorningEnabled
	}
	if req.EveningEnabled != nil {
		setting.EveningEnabled = *req.EveningEnabled
	}

	if err := s.reminderRepo.UpsertSetting(s.db, setting); err != nil {
		return nil, fmt.Errorf("failed to upsert reminder setting: %w", err)
	}
	return setting, nil
}

func (s *reminderService) resolveChild(childID string) error {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to resolve child for reminder setting: %w", err)
	}
	return nil
}
