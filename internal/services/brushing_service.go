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

// --- Custom Service Errors for Brushing Records ---
var (
	ErrRecordNotFound     = errors.New("brushing record not found")
	ErrSessionTaken       = errors.New("a brushing record already exists for this child, date and session")
	ErrBrushingValidation = errors.New("brushing record validation error")
	ErrTimestampFormat    = errors.New("invalid timestamp format, please use RFC 3339")
)

const (
	DefaultBrushingDuration = 120 // seconds
	DefaultQualityScore     = 5
	MaxBrushingDuration     = 3600
	MaxQualityScore         = 10
)

// --- Brushing DTOs ---
type CreateBrushingRequest struct {
	BrushedAt    *string `json:"brushed_at"` // RFC 3339; defaults to now
	Session      *string `json:"session"`    // "morning" | "evening", optional
	Duration     *int    `json:"duration"`
	QualityScore *int    `json:"quality_score"`
	Notes        *string `json:"notes"`
}

type UpdateBrushingRequest struct {
	Duration     *int    `json:"duration"`
	QualityScore *int    `json:"quality_score"`
	Notes        *string `json:"notes"`
}

// BrushingFilters bounds a record listing. Both ends are inclusive.
type BrushingFilters struct {
	Start *time.Time
	End   *time.Time
}

// --- BrushingService Interface ---
type BrushingService interface {
	CreateRecord(childID string, req CreateBrushingRequest) (*models.BrushingRecord, error)
	GetRecordsByChild(childID string, filters BrushingFilters) ([]models.BrushingRecord, error)
	UpdateRecord(recordID string, req UpdateBrushingRequest) (*models.BrushingRecord, error)
	DeleteRecord(recordID string) error
}

// --- brushingService Implementation ---
type brushingService struct {
	brushingRepo repositories.BrushingRepository
	childRepo    repositories.ChildRepository
	db           *sql.DB
}

// NewBrushingService creates a new instance of BrushingService.
func NewBrushingService(brushingRepo repositories.BrushingRepository, childRepo repositories.ChildRepository, db *sql.DB) BrushingService {
	return &brushingService{
		brushingRepo: brushingRepo,
		childRepo:    childRepo,
		db:           db,
	}
}

func validateBrushingBounds(duration, qualityScore int) error {
	if duration < 0 || duration > MaxBrushingDuration {
		return fmt.Errorf("%w: duration must be between 0 and %d seconds", ErrBrushingValidation, MaxBrushingDuration)
	}
	if qualityScore < 0 || qualityScore > MaxQualityScore {
		return fmt.Errorf("%w: quality score must be between 0 and %d", ErrBrushingValidation, MaxQualityScore)
	}
	return nil
}

func validateSession(session *string) error {
	if session == nil {
		return nil
	}
	if *session != models.SessionMorning && *session != models.SessionEvening {
		return fmt.Errorf("%w: session must be %q or %q", ErrBrushingValidation, models.SessionMorning, models.SessionEvening)
	}
	return nil
}

func (s *brushingService) CreateRecord(childID string, req CreateBrushingRequest) (*models.BrushingRecord, error) {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to resolve child for brushing record: %w", err)
	}

	record := &models.BrushingRecord{
		ChildID:      childID,
		Duration:     DefaultBrushingDuration,
		QualityScore: DefaultQualityScore,
	}
	if req.Notes != nil {
		record.Notes = utils.NewNullString(*req.Notes)
	}
	if req.Duration != nil {
		record.Duration = *req.Duration
	}
	if req.QualityScore != nil {
		record.QualityScore = *req.QualityScore
	}
	if err := validateBrushingBounds(record.Duration, record.QualityScore); err != nil {
		return nil, err
	}
	if err := validateSession(req.Session); err != nil {
		return nil, err
	}
	record.Session = req.Session

	if req.BrushedAt != nil && *req.BrushedAt != "" {
		brushedAt, err := utils.ParseTimestamp(*req.BrushedAt)
		if err != nil {
			return nil, ErrTimestampFormat
		}
		record.BrushedAt = brushedAt
	}

	if err := s.brushingRepo.CreateRecord(s.db, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrSessionTaken
		}
		return nil, fmt.Errorf("failed to create brushing record in repository: %w", err)
	}
	return record, nil
}

func (s *brushingService) GetRecordsByChild(childID string, filters BrushingFilters) ([]models.BrushingRecord, error) {
	_, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to resolve child for record listing: %w", err)
	}

	records, err := s.brushingRepo.GetRecordsByChild(childID, filters.Start, filters.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get brushing records: %w", err)
	}
	return records, nil
}

func (s *brushingService) UpdateRecord(recordID string, req UpdateBrushingRequest) (*models.BrushingRecord, error) {
	record, err := s.brushingRepo.GetRecordByID(recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find brushing record for update: %w", err)
	}

	if req.Duration != nil {
		record.Duration = *req.Duration
	}
	if req.QualityScore != nil {
		record.QualityScore = *req.QualityScore
	}
	if req.Notes != nil {
		record.Notes = utils.NewNullString(*req.Notes)
	}
	if err := validateBrushingBounds(record.Duration, record.QualityScore); err != nil {
		return nil, err
	}

	if err := s.brushingRepo.UpdateRecord(s.db, record); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update brushing record in repository: %w", err)
	}
	return record, nil
}

func (s *brushingService) DeleteRecord(recordID string) error {
	err := s.brushingRepo.DeleteRecord(s.db, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete brushing record: %w", err)
	}
	return nil
}
