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

// --- StatsService Interface ---
type StatsService interface {
	GetChildStats(childID string) (*models.ChildStats, error)
}

// --- statsService Implementation ---
type statsService struct {
	brushingRepo repositories.BrushingRepository
	childRepo    repositories.ChildRepository
	db           *sql.DB
	now          func() time.Time
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(brushingRepo repositories.BrushingRepository, childRepo repositories.ChildRepository, db *sql.DB) StatsService {
	return &statsService{
		brushingRepo: brushingRepo,
		childRepo:    childRepo,
		db:           db,
		now:          time.Now,
	}
}

// GetChildStats computes the rolling-window aggregates and the current streak
// for a child. Averages and the last brushing are taken over the 30-day
// window; an empty window yields zeros, not an error.
func (s *statsService) GetChildStats(childID string) (*models.ChildStats, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to resolve child for stats: %w", err)
	}

	now := s.now().UTC()

	total, err := s.brushingRepo.CountByChild(s.db, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to count brushing records: %w", err)
	}

	window, err := s.brushingRepo.GetRecordsSince(childID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to load 30-day window: %w", err)
	}

	stats := &models.ChildStats{
		TotalBrushings: total,
		Last30Days:     len(window),
	}

	sevenDaysAgo := now.AddDate(0, 0, -7)
	var durationSum, qualitySum int
	for i := range window {
		if !window[i].BrushedAt.Before(sevenDaysAgo) {
			stats.Last7Days++
		}
		durationSum += window[i].Duration
		qualitySum += window[i].QualityScore
	}
	if len(window) > 0 {
		stats.AverageDuration = float64(durationSum) / float64(len(window))
		stats.AverageQuality = float64(qualitySum) / float64(len(window))
		stats.LastBrushing = &window[0] // repository orders newest first
	}

	dates, err := s.brushingRepo.GetDistinctBrushedDates(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to load brushed dates: %w", err)
	}
	stats.StreakDays = CalculateStreak(dates, now, child.CreatedAt)

	return stats, nil
}

// CalculateStreak counts consecutive calendar days with at least one brushing,
// walking backward from today's date. A day with no record stops the walk, so
// a missing record today means a streak of zero regardless of history.
//
// The walk never goes below the child's creation date, which bounds it even
// for a child who has brushed every day since the account was created;
// future-dated records cannot extend it past today either.
func CalculateStreak(dates []time.Time, now, createdAt time.Time) int {
	brushed := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		brushed[utils.DateOf(d)] = struct{}{}
	}

	floor := utils.DateOf(createdAt)
	streak := 0
	for day := utils.DateOf(now); !day.Before(floor); day = day.AddDate(0, 0, -1) {
		if _, ok := brushed[day]; !ok {
			break
		}
		streak++
	}
	return streak
}
