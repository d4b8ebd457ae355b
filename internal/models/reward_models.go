package models

import "time"

// Reward is a goal a child can claim once their brushing count reaches
// PointsRequired. EarnedAt is set exactly once, on the false->true transition
// of IsEarned; there is no unclaim.
type Reward struct {
	ID             string     `json:"id" db:"id"`
	ChildID        string     `json:"child_id" db:"child_id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description,omitempty" db:"description"`
	PointsRequired int        `json:"points_required" db:"points_required"`
	IsEarned       bool       `json:"is_earned" db:"is_earned"`
	EarnedAt       *time.Time `json:"earned_at" db:"earned_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
