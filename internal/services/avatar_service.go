package services

import (
	"database/sql"
	"errors"
	"fmt"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"
)

// --- Custom Service Errors for Avatars ---
var (
	ErrAvatarNotFound   = errors.New("avatar not found")
	ErrAvatarValidation = errors.New("avatar data validation error")
)

// --- Avatar DTOs ---
type PutAvatarRequest struct {
	Style     string  `json:"style" binding:"required"`
	Color     string  `json:"color" binding:"required"`
	Accessory *string `json:"accessory"`
}

// --- AvatarService Interface ---
type AvatarService interface {
	GetAvatar(childID string) (*models.Avatar, error)
	PutAvatar(childID string, req PutAvatarRequest) (*models.Avatar, error)
}

// --- avatarService Implementation ---
type avatarService struct {
	avatarRepo repositories.AvatarRepository
	childRepo  repositories.ChildRepository
	db         *sql.DB
}

// NewAvatarService creates a new instance of AvatarService.
func NewAvatarService(avatarRepo repositories.AvatarRepository, childRepo repositories.ChildRepository, db *sql.DB) AvatarService {
	return &avatarService{
		avatarRepo: avatarRepo,
		childRepo:  childRepo,
		db:         db,
	}
}

func (s *avatarService) GetAvatar(childID string) (*models.Avatar, error) {
	if err := s.resolveChild(childID); err != nil {
		return nil, err
	}
	avatar, err := s.avatarRepo.GetByChild(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}
	return avatar, nil
}

// PutAvatar creates or replaces the child's avatar configuration.
func (s *avatarService) PutAvatar(childID string, req PutAvatarRequest) (*models.Avatar, error) {
	if err := s.resolveChild(childID); err != nil {
		return nil, err
	}
	if utils.IsEmpty(req.Style) || utils.IsEmpty(req.Color) {
		return nil, fmt.Errorf("%w: style and color are required", ErrAvatarValidation)
	}

	avatar := &models.Avatar{
		ChildID:   childID,
		Style:     req.Style,
		Color:     req.Color,
		Accessory: req.Accessory,
	}
	if err := s.avatarRepo.UpsertAvatar(s.db, avatar); err != nil {
		return nil, fmt.Errorf("failed to upsert avatar: %w", err)
	}
	return avatar, nil
}

func (s *avatarService) resolveChild(childID string) error {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to resolve child for avatar: %w", err)
	}
	return nil
}
