package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
)

// UsageRepository defines the interface for the append-only app usage log.
type UsageRepository interface {
	CreateUsage(executor SQLExecutor, usage *models.AppUsage) error
	GetByParent(parentID string) ([]models.AppUsage, error)
	DeleteByParent(executor SQLExecutor, parentID string) error
}

type usageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new instance of UsageRepository.
func NewUsageRepository(db *sql.DB) UsageRepository {
	return &usageRepository{db: db}
}

// CreateUsage appends an app usage entry for an existing parent.
func (r *usageRepository) CreateUsage(executor SQLExecutor, usage *models.AppUsage) error {
	if usage.ID == "" {
		usage.ID = uuid.NewString()
	}
	if usage.OccurredAt.IsZero() {
		usage.OccurredAt = time.Now().UTC()
	}

	query := `INSERT INTO app_usage (id, parent_id, platform, app_version, occurred_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := executor.Exec(query, usage.ID, usage.ParentID, usage.Platform, usage.AppVersion, usage.OccurredAt)
	if err != nil {
		return fmt.Errorf("%w: creating app usage entry: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetByParent retrieves a parent's usage entries, newest first.
func (r *usageRepository) GetByParent(parentID string) ([]models.AppUsage, error) {
	entries := []models.AppUsage{}
	query := `SELECT id, parent_id, platform, app_version, occurred_at
	          FROM app_usage WHERE parent_id = $1 ORDER BY occurred_at DESC`

	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying app usage for parent %s: %v", ErrDatabaseError, parentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.AppUsage
		if err := rows.Scan(&entry.ID, &entry.ParentID, &entry.Platform, &entry.AppVersion, &entry.OccurredAt); err != nil {
			return nil, fmt.Errorf("%w: scanning app usage entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating app usage rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// DeleteByParent removes a parent's usage entries.
func (r *usageRepository) DeleteByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(`DELETE FROM app_usage WHERE parent_id = $1`, parentID)
	if err != nil {
		return fmt.Errorf("%w: deleting app usage of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}
