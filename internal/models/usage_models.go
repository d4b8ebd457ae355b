package models

import "time"

// AppUsage is an append-only log entry recording an app open by a parent.
type AppUsage struct {
	ID         string    `json:"id" db:"id"`
	ParentID   string    `json:"parent_id" db:"parent_id"`
	Platform   *string   `json:"platform,omitempty" db:"platform"`
	AppVersion *string   `json:"app_version,omitempty" db:"app_version"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}
