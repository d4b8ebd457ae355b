package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
)

// AvatarRepository defines the interface for avatar database operations.
// One avatar row per child; writes are upserts.
type AvatarRepository interface {
	UpsertAvatar(executor SQLExecutor, avatar *models.Avatar) error
	GetByChild(childID string) (*models.Avatar, error)
	DeleteByChild(executor SQLExecutor, childID string) error
	DeleteByParent(executor SQLExecutor, parentID string) error
}

type avatarRepository struct {
	db *sql.DB
}

// NewAvatarRepository creates a new instance of AvatarRepository.
func NewAvatarRepository(db *sql.DB) AvatarRepository {
	return &avatarRepository{db: db}
}

// UpsertAvatar creates or replaces the child's avatar configuration.
func (r *avatarRepository) UpsertAvatar(executor SQLExecutor, avatar *models.Avatar) error {
	if avatar.ID == "" {
		avatar.ID = uuid.NewString()
	}
	avatar.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO avatars (id, child_id, style, color, accessory, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (child_id) DO UPDATE SET
	            style = EXCLUDED.style,
	            color = EXCLUDED.color,
	            accessory = EXCLUDED.accessory,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id`

	err := executor.QueryRow(query,
		avatar.ID, avatar.ChildID, avatar.Style, avatar.Color, avatar.Accessory, avatar.UpdatedAt,
	).Scan(&avatar.ID)
	if err != nil {
		return fmt.Errorf("%w: upserting avatar for child %s: %v", ErrDatabaseError, avatar.ChildID, err)
	}
	return nil
}

// GetByChild retrieves the avatar of a child.
func (r *avatarRepository) GetByChild(childID string) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	query := `SELECT id, child_id, style, color, accessory, updated_at
	          FROM avatars WHERE child_id = $1`

	err := r.db.QueryRow(query, childID).Scan(
		&avatar.ID, &avatar.ChildID, &avatar.Style, &avatar.Color, &avatar.Accessory, &avatar.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting avatar for child %s: %v", ErrDatabaseError, childID, err)
	}
	return avatar, nil
}

// DeleteByChild removes the avatar of a child.
func (r *avatarRepository) DeleteByChild(executor SQLExecutor, childID string) error {
	_, err := executor.Exec(`DELETE FROM avatars WHERE child_id = $1`, childID)
	if err != nil {
		return fmt.Errorf("%w: deleting avatar of child %s: %v", ErrDatabaseError, childID, err)
	}
	return nil
}

// DeleteByParent removes the avatars of all of a parent's children.
func (r *avatarRepository) DeleteByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(
		`DELETE FROM avatars WHERE child_id IN (SELECT id FROM children WHERE parent_id = $1)`,
		parentID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting avatars of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}
