package models

import "time"

// ReminderSetting holds the daily reminder configuration for a child.
// Exactly one row exists per child; writes go through an upsert.
type ReminderSetting struct {
	ID             string    `json:"id" db:"id"`
	ChildID        string    `json:"child_id" db:"child_id"`
	MorningTime    string    `json:"morning_time" db:"morning_time"` // "HH:MM"
	EveningTime    string    `json:"evening_time" db:"evening_time"` // "HH:MM"
	MorningEnabled bool      `json:"morning_enabled" db:"morning_enabled"`
	EveningEnabled bool      `json:"evening_enabled" db:"evening_enabled"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
