package models

import "time"

// Avatar is the cosmetic character configuration for a child. One per child.
type Avatar struct {
	ID        string    `json:"id" db:"id"`
	ChildID   string    `json:"child_id" db:"child_id"`
	Style     string    `json:"style" db:"style"`
	Color     string    `json:"color" db:"color"`
	Accessory *string   `json:"accessory,omitempty" db:"accessory"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
