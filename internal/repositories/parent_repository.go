package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ParentRepository defines the interface for parent-related database operations.
type ParentRepository interface {
	CreateParent(executor SQLExecutor, parent *models.Parent) error
	GetParentByID(id string) (*models.Parent, error)
	GetParentByEmail(email string) (*models.Parent, error)
	GetParents() ([]models.Parent, error)
	CountParents() (int, error)
	DeleteParent(executor SQLExecutor, id string) error
}

type parentRepository struct {
	db *sql.DB
}

// NewParentRepository creates a new instance of ParentRepository.
func NewParentRepository(db *sql.DB) ParentRepository {
	return &parentRepository{db: db}
}

// CreateParent inserts a new parent. The ID and creation timestamp are
// assigned here when the caller leaves them unset.
func (r *parentRepository) CreateParent(executor SQLExecutor, parent *models.Parent) error {
	if parent.ID == "" {
		parent.ID = uuid.NewString()
	}
	if parent.CreatedAt.IsZero() {
		parent.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO parents (id, name, email, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := executor.Exec(query, parent.ID, parent.Name, parent.Email, parent.PasswordHash, parent.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating parent: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetParentByID retrieves a parent with the derived children count.
func (r *parentRepository) GetParentByID(id string) (*models.Parent, error) {
	parent := &models.Parent{}
	query := `SELECT p.id, p.name, p.email, p.password_hash, p.created_at,
	                 (SELECT COUNT(*) FROM children c WHERE c.parent_id = p.id) AS children_count
	          FROM parents p WHERE p.id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&parent.ID, &parent.Name, &parent.Email, &parent.PasswordHash, &parent.CreatedAt,
		&parent.ChildrenCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting parent by ID %s: %v", ErrDatabaseError, id, err)
	}
	return parent, nil
}

// GetParentByEmail retrieves a parent by their unique email.
func (r *parentRepository) GetParentByEmail(email string) (*models.Parent, error) {
	parent := &models.Parent{}
	query := `SELECT p.id, p.name, p.email, p.password_hash, p.created_at,
	                 (SELECT COUNT(*) FROM children c WHERE c.parent_id = p.id) AS children_count
	          FROM parents p WHERE p.email = $1`

	err := r.db.QueryRow(query, email).Scan(
		&parent.ID, &parent.Name, &parent.Email, &parent.PasswordHash, &parent.CreatedAt,
		&parent.ChildrenCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting parent by email %s: %v", ErrDatabaseError, email, err)
	}
	return parent, nil
}

// GetParents retrieves all parents ordered by creation time.
func (r *parentRepository) GetParents() ([]models.Parent, error) {
	parents := []models.Parent{}
	query := `SELECT p.id, p.name, p.email, p.password_hash, p.created_at,
	                 (SELECT COUNT(*) FROM children c WHERE c.parent_id = p.id) AS children_count
	          FROM parents p ORDER BY p.created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying parents: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var parent models.Parent
		if err := rows.Scan(
			&parent.ID, &parent.Name, &parent.Email, &parent.PasswordHash, &parent.CreatedAt,
			&parent.ChildrenCount,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning parent: %v", ErrDatabaseError, err)
		}
		parents = append(parents, parent)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating parent rows: %v", ErrDatabaseError, err)
	}
	return parents, nil
}

// CountParents returns the total number of parent rows. Used by the seed step.
func (r *parentRepository) CountParents() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM parents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting parents: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// DeleteParent removes a parent row. Dependents are deleted by the service
// inside the same transaction before this is called.
func (r *parentRepository) DeleteParent(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM parents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting parent ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting parent ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
