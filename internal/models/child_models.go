package models

import "time"

// Child belongs to exactly one Parent.
type Child struct {
	ID        string    `json:"id" db:"id"`
	ParentID  string    `json:"parent_id" db:"parent_id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// TotalBrushings is derived at read time, not stored.
	TotalBrushings int `json:"total_brushings" db:"-"`
}
