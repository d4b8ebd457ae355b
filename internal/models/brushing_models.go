package models

import "time"

// Session slots for brushing records. A record may carry no slot at all;
// when one is set, (child, calendar date, slot) is unique.
const (
	SessionMorning = "morning"
	SessionEvening = "evening"
)

// BrushingRecord is a single tooth-brushing event for a child.
type BrushingRecord struct {
	ID           string    `json:"id" db:"id"`
	ChildID      string    `json:"child_id" db:"child_id"`
	BrushedAt    time.Time `json:"brushed_at" db:"brushed_at"`
	Session      *string   `json:"session,omitempty" db:"session"`
	Duration     int       `json:"duration" db:"duration"`           // seconds
	QualityScore int       `json:"quality_score" db:"quality_score"` // 0..10
	Notes        *string   `json:"notes,omitempty" db:"notes"`
}

// ChildStats is the statistics engine output for a single child.
type ChildStats struct {
	TotalBrushings  int             `json:"total_brushings"`
	Last30Days      int             `json:"last_30_days"`
	Last7Days       int             `json:"last_7_days"`
	AverageDuration float64         `json:"average_duration"`
	AverageQuality  float64         `json:"average_quality"`
	StreakDays      int             `json:"streak_days"`
	LastBrushing    *BrushingRecord `json:"last_brushing"`
}
