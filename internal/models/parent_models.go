package models

import "time"

// Parent represents a registered parent account. The password hash is never
// serialized; it is only set when the parent registered with a password.
type Parent struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// ChildrenCount is derived at read time, not stored.
	ChildrenCount int `json:"children_count" db:"-"`
}
