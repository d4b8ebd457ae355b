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

// BrushingRepository defines the interface for brushing-record database operations.
type BrushingRepository interface {
	CreateRecord(executor SQLExecutor, record *models.BrushingRecord) error
	GetRecordByID(id string) (*models.BrushingRecord, error)
	GetRecordsByChild(childID string, start, end *time.Time) ([]models.BrushingRecord, error)
	GetRecordsSince(childID string, since time.Time) ([]models.BrushingRecord, error)
	GetDistinctBrushedDates(childID string) ([]time.Time, error)
	CountByChild(executor SQLExecutor, childID string) (int, error)
	UpdateRecord(executor SQLExecutor, record *models.BrushingRecord) error
	DeleteRecord(executor SQLExecutor, id string) error
	DeleteByChild(executor SQLExecutor, childID string) error
	DeleteByParent(executor SQLExecutor, parentID string) error
}

type brushingRepository struct {
	db *sql.DB
}

// NewBrushingRepository creates a new instance of BrushingRepository.
func NewBrushingRepository(db *sql.DB) BrushingRepository {
	return &brushingRepository{db: db}
}

// CreateRecord inserts a new brushing record. A unique-violation on the
// (child, date, session) index surfaces as ErrDuplicateKey.
func (r *brushingRepository) CreateRecord(executor SQLExecutor, record *models.BrushingRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.BrushedAt.IsZero() {
		record.BrushedAt = time.Now().UTC()
	}

	query := `INSERT INTO brushing_records (id, child_id, brushed_at, session, duration, quality_score, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := executor.Exec(query,
		record.ID, record.ChildID, record.BrushedAt, record.Session,
		record.Duration, record.QualityScore, record.Notes,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating brushing record: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetRecordByID retrieves a single brushing record.
func (r *brushingRepository) GetRecordByID(id string) (*models.BrushingRecord, error) {
	record := &models.BrushingRecord{}
	query := `SELECT id, child_id, brushed_at, session, duration, quality_score, notes
	          FROM brushing_records WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&record.ID, &record.ChildID, &record.BrushedAt, &record.Session,
		&record.Duration, &record.QualityScore, &record.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting brushing record by ID %s: %v", ErrDatabaseError, id, err)
	}
	return record, nil
}

// GetRecordsByChild retrieves a child's records, newest first, optionally
// bounded by start/end timestamps (both inclusive).
func (r *brushingRepository) GetRecordsByChild(childID string, start, end *time.Time) ([]models.BrushingRecord, error) {
	query := `SELECT id, child_id, brushed_at, session, duration, quality_score, notes
	          FROM brushing_records WHERE child_id = $1`
	args := []interface{}{childID}
	argCount := 2

	if start != nil {
		query += fmt.Sprintf(" AND brushed_at >= $%d", argCount)
		args = append(args, *start)
		argCount++
	}
	if end != nil {
		query += fmt.Sprintf(" AND brushed_at <= $%d", argCount)
		args = append(args, *end)
	}
	query += " ORDER BY brushed_at DESC"

	return r.queryRecords(query, args...)
}

// GetRecordsSince retrieves a child's records with brushed_at >= since, newest first.
func (r *brushingRepository) GetRecordsSince(childID string, since time.Time) ([]models.BrushingRecord, error) {
	query := `SELECT id, child_id, brushed_at, session, duration, quality_score, notes
	          FROM brushing_records WHERE child_id = $1 AND brushed_at >= $2
	          ORDER BY brushed_at DESC`
	return r.queryRecords(query, childID, since)
}

// GetDistinctBrushedDates returns the distinct UTC calendar dates on which the
// child has at least one record, newest first. The streak walk runs over this
// finite set, so it terminates even for a never-missed child.
func (r *brushingRepository) GetDistinctBrushedDates(childID string) ([]time.Time, error) {
	dates := []time.Time{}
	query := `SELECT DISTINCT (brushed_at AT TIME ZONE 'UTC')::date AS brushed_on
	          FROM brushing_records WHERE child_id = $1 ORDER BY brushed_on DESC`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying brushed dates for child %s: %v", ErrDatabaseError, childID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: scanning brushed date: %v", ErrDatabaseError, err)
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating brushed date rows: %v", ErrDatabaseError, err)
	}
	return dates, nil
}

// CountByChild counts all records for a child. Takes an executor so the
// reward claim can count inside its transaction.
func (r *brushingRepository) CountByChild(executor SQLExecutor, childID string) (int, error) {
	var count int
	err := executor.QueryRow(`SELECT COUNT(*) FROM brushing_records WHERE child_id = $1`, childID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting brushing records for child %s: %v", ErrDatabaseError, childID, err)
	}
	return count, nil
}

// UpdateRecord updates a record's mutable fields (duration, quality score, notes).
func (r *brushingRepository) UpdateRecord(executor SQLExecutor, record *models.BrushingRecord) error {
	result, err := executor.Exec(
		`UPDATE brushing_records SET duration = $1, quality_score = $2, notes = $3 WHERE id = $4`,
		record.Duration, record.QualityScore, record.Notes, record.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating brushing record ID %s: %v", ErrDatabaseError, record.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating brushing record ID %s: %v", ErrDatabaseError, record.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecord removes a single brushing record.
func (r *brushingRepository) DeleteRecord(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM brushing_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting brushing record ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting brushing record ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByChild removes all records of a child.
func (r *brushingRepository) DeleteByChild(executor SQLExecutor, childID string) error {
	_, err := executor.Exec(`DELETE FROM brushing_records WHERE child_id = $1`, childID)
	if err != nil {
		return fmt.Errorf("%w: deleting brushing records of child %s: %v", ErrDatabaseError, childID, err)
	}
	return nil
}

// DeleteByParent removes all records of all of a parent's children.
func (r *brushingRepository) DeleteByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(
		`DELETE FROM brushing_records WHERE child_id IN (SELECT id FROM children WHERE parent_id = $1)`,
		parentID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting brushing records of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}

func (r *brushingRepository) queryRecords(query string, args ...interface{}) ([]models.BrushingRecord, error) {
	records := []models.BrushingRecord{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying brushing records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.BrushingRecord
		if err := rows.Scan(
			&record.ID, &record.ChildID, &record.BrushedAt, &record.Session,
			&record.Duration, &record.QualityScore, &record.Notes,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning brushing record: %v", ErrDatabaseError, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating brushing record rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
