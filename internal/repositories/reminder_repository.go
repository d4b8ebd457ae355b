package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
)

// ReminderRepository defines the interface for reminder-setting database operations.
// child_id is unique, so writes are upserts.
type ReminderRepository interface {
	UpsertSetting(executor SQLExecutor, setting *models.ReminderSetting) error
	GetByChild(childID string) (*models.ReminderSetting, error)
	DeleteByChild(executor SQLExecutor, childID string) error
	DeleteByParent(executor SQLExecutor, parentID string) error
}

type reminderRepository struct {
	db *sql.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *sql.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// UpsertSetting creates the child's reminder setting or updates the existing
// row, keeping exactly one row per child.
func (r *reminderRepository) UpsertSetting(executor SQLExecutor, setting *models.ReminderSetting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if setting.CreatedAt.IsZero() {
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now

	query := `INSERT INTO reminder_settings
	            (id, child_id, morning_time, evening_time, morning_enabled, evening_enabled, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (child_id) DO UPDATE SET
	            morning_time = EXCLUDED.morning_time,
	            evening_time = EXCLUDED.evening_time,
	            morning_enabled = EXCLUDED.morning_enabled,
	            evening_enabled = EXCLUDED.evening_enabled,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at`

	err := executor.QueryRow(query,
		setting.ID, setting.ChildID, setting.MorningTime, setting.EveningTime,
		setting.MorningEnabled, setting.EveningEnabled, setting.CreatedAt, setting.UpdatedAt,
	).Scan(&setting.ID, &setting.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: upserting reminder setting for child %s: %v", ErrDatabaseError, setting.ChildID, err)
	}
	return nil
}

// GetByChild retrieves the reminder setting of a child.
func (r *reminderRepository) GetByChild(childID string) (*models.ReminderSetting, error) {
	setting := &models.ReminderSetting{}
	query := `SELECT id, child_id, morning_time, evening_time, morning_enabled, evening_enabled, created_at, updated_at
	          FROM reminder_settings WHERE child_id = $1`

	err := r.db.QueryRow(query, childID).Scan(
		&setting.ID, &setting.ChildID, &setting.MorningTime, &setting.EveningTime,
		&setting.MorningEnabled, &setting.EveningEnabled, &setting.CreatedAt, &setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reminder setting for child %s: %v", ErrDatabaseError, childID, err)
	}
	return setting, nil
}

// DeleteByChild removes the reminder setting of a child.
func (r *reminderRepository) DeleteByChild(executor SQLExecutor, childID string) error {
	_, err := executor.Exec(`DELETE FROM reminder_settings WHERE child_id = $1`, childID)
	if err != nil {
		return fmt.Errorf("%w: deleting reminder setting of child %s: %v", ErrDatabaseError, childID, err)
	}
	return nil
}

// DeleteByParent removes the reminder settings of all of a parent's children.
func (r *reminderRepository) DeleteByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(
		`DELETE FROM reminder_settings WHERE child_id IN (SELECT id FROM children WHERE parent_id = $1)`,
		parentID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting reminder settings of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}
