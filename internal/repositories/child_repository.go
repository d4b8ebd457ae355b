package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
)

// ChildRepository defines the interface for child-related database operations.
type ChildRepository interface {
	CreateChild(executor SQLExecutor, child *models.Child) error
	GetChildByID(id string) (*models.Child, error)
	GetChildrenByParent(parentID string) ([]models.Child, error)
	ListChildIDsByParent(executor SQLExecutor, parentID string) ([]string, error)
	UpdateChild(executor SQLExecutor, child *models.Child) error
	DeleteChild(executor SQLExecutor, id string) error
	DeleteChildrenByParent(executor SQLExecutor, parentID string) error
}

type childRepository struct {
	db *sql.DB
}

// NewChildRepository creates a new instance of ChildRepository.
func NewChildRepository(db *sql.DB) ChildRepository {
	return &childRepository{db: db}
}

// CreateChild inserts a new child under an existing parent.
func (r *childRepository) CreateChild(executor SQLExecutor, child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	if child.CreatedAt.IsZero() {
		child.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO children (id, parent_id, name, age, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := executor.Exec(query, child.ID, child.ParentID, child.Name, child.Age, child.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating child: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetChildByID retrieves a child with the derived total brushing count.
func (r *childRepository) GetChildByID(id string) (*models.Child, error) {
	child := &models.Child{}
	query := `SELECT c.id, c.parent_id, c.name, c.age, c.created_at,
	                 (SELECT COUNT(*) FROM brushing_records b WHERE b.child_id = c.id) AS total_brushings
	          FROM children c WHERE c.id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&child.ID, &child.ParentID, &child.Name, &child.Age, &child.CreatedAt,
		&child.TotalBrushings,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting child by ID %s: %v", ErrDatabaseError, id, err)
	}
	return child, nil
}

// GetChildrenByParent retrieves all children of a parent ordered by creation time.
func (r *childRepository) GetChildrenByParent(parentID string) ([]models.Child, error) {
	children := []models.Child{}
	query := `SELECT c.id, c.parent_id, c.name, c.age, c.created_at,
	                 (SELECT COUNT(*) FROM brushing_records b WHERE b.child_id = c.id) AS total_brushings
	          FROM children c WHERE c.parent_id = $1 ORDER BY c.created_at ASC`

	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying children for parent %s: %v", ErrDatabaseError, parentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var child models.Child
		if err := rows.Scan(
			&child.ID, &child.ParentID, &child.Name, &child.Age, &child.CreatedAt,
			&child.TotalBrushings,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning child: %v", ErrDatabaseError, err)
		}
		children = append(children, child)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating child rows: %v", ErrDatabaseError, err)
	}
	return children, nil
}

// ListChildIDsByParent returns the IDs of a parent's children. Takes an
// executor so the cascade delete can read inside its transaction.
func (r *childRepository) ListChildIDsByParent(executor SQLExecutor, parentID string) ([]string, error) {
	ids := []string{}
	rows, err := executor.Query(`SELECT id FROM children WHERE parent_id = $1`, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing child IDs for parent %s: %v", ErrDatabaseError, parentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning child ID: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating child ID rows: %v", ErrDatabaseError, err)
	}
	return ids, nil
}

// UpdateChild updates a child's mutable fields (name and age).
func (r *childRepository) UpdateChild(executor SQLExecutor, child *models.Child) error {
	result, err := executor.Exec(
		`UPDATE children SET name = $1, age = $2 WHERE id = $3`,
		child.Name, child.Age, child.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating child ID %s: %v", ErrDatabaseError, child.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating child ID %s: %v", ErrDatabaseError, child.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChild removes a child row. Dependents are deleted by the service
// inside the same transaction before this is called.
func (r *childRepository) DeleteChild(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting child ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting child ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChildrenByParent removes all children of a parent.
func (r *childRepository) DeleteChildrenByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(`DELETE FROM children WHERE parent_id = $1`, parentID)
	if err != nil {
		return fmt.Errorf("%w: deleting children of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}
