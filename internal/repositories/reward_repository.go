package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/google/uuid"
)

// RewardRepository defines the interface for reward-related database operations.
type RewardRepository interface {
	CreateReward(executor SQLExecutor, reward *models.Reward) error
	GetRewardByID(id string) (*models.Reward, error)
	GetRewardForUpdate(executor SQLExecutor, id string) (*models.Reward, error)
	GetRewardsByChild(childID string) ([]models.Reward, error)
	UpdateReward(executor SQLExecutor, reward *models.Reward) error
	MarkEarned(executor SQLExecutor, id string, earnedAt time.Time) error
	DeleteByChild(executor SQLExecutor, childID string) error
	DeleteByParent(executor SQLExecutor, parentID string) error
}

type rewardRepository struct {
	db *sql.DB
}

// NewRewardRepository creates a new instance of RewardRepository.
func NewRewardRepository(db *sql.DB) RewardRepository {
	return &rewardRepository{db: db}
}

// CreateReward inserts a new reward for an existing child.
func (r *rewardRepository) CreateReward(executor SQLExecutor, reward *models.Reward) error {
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO rewards (id, child_id, title, description, points_required, is_earned, earned_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := executor.Exec(query,
		reward.ID, reward.ChildID, reward.Title, reward.Description,
		reward.PointsRequired, reward.IsEarned, reward.EarnedAt, reward.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating reward: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetRewardByID retrieves a single reward.
func (r *rewardRepository) GetRewardByID(id string) (*models.Reward, error) {
	return scanReward(r.db.QueryRow(
		`SELECT id, child_id, title, description, points_required, is_earned, earned_at, created_at
		 FROM rewards WHERE id = $1`, id), id)
}

// GetRewardForUpdate retrieves a reward with a row lock, serializing
// concurrent claims inside the caller's transaction.
func (r *rewardRepository) GetRewardForUpdate(executor SQLExecutor, id string) (*models.Reward, error) {
	return scanReward(executor.QueryRow(
		`SELECT id, child_id, title, description, points_required, is_earned, earned_at, created_at
		 FROM rewards WHERE id = $1 FOR UPDATE`, id), id)
}

func scanReward(row *sql.Row, id string) (*models.Reward, error) {
	reward := &models.Reward{}
	err := row.Scan(
		&reward.ID, &reward.ChildID, &reward.Title, &reward.Description,
		&reward.PointsRequired, &reward.IsEarned, &reward.EarnedAt, &reward.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reward by ID %s: %v", ErrDatabaseError, id, err)
	}
	return reward, nil
}

// GetRewardsByChild retrieves all rewards of a child ordered by creation time.
func (r *rewardRepository) GetRewardsByChild(childID string) ([]models.Reward, error) {
	rewards := []models.Reward{}
	query := `SELECT id, child_id, title, description, points_required, is_earned, earned_at, created_at
	          FROM rewards WHERE child_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rewards for child %s: %v", ErrDatabaseError, childID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reward models.Reward
		if err := rows.Scan(
			&reward.ID, &reward.ChildID, &reward.Title, &reward.Description,
			&reward.PointsRequired, &reward.IsEarned, &reward.EarnedAt, &reward.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning reward: %v", ErrDatabaseError, err)
		}
		rewards = append(rewards, reward)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reward rows: %v", ErrDatabaseError, err)
	}
	return rewards, nil
}

// UpdateReward updates a reward's mutable fields (title, description, points required).
func (r *rewardRepository) UpdateReward(executor SQLExecutor, reward *models.Reward) error {
	result, err := executor.Exec(
		`UPDATE rewards SET title = $1, description = $2, points_required = $3 WHERE id = $4`,
		reward.Title, reward.Description, reward.PointsRequired, reward.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating reward ID %s: %v", ErrDatabaseError, reward.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating reward ID %s: %v", ErrDatabaseError, reward.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkEarned flips a reward to earned. The is_earned guard in the WHERE
// clause makes the false->true transition happen at most once even if two
// transactions race past the row lock.
func (r *rewardRepository) MarkEarned(executor SQLExecutor, id string, earnedAt time.Time) error {
	result, err := executor.Exec(
		`UPDATE rewards SET is_earned = TRUE, earned_at = $1 WHERE id = $2 AND is_earned = FALSE`,
		earnedAt, id,
	)
	if err != nil {
		return fmt.Errorf("%w: marking reward ID %s earned: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for marking reward ID %s earned: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByChild removes all rewards of a child.
func (r *rewardRepository) DeleteByChild(executor SQLExecutor, childID string) error {
	_, err := executor.Exec(`DELETE FROM rewards WHERE child_id = $1`, childID)
	if err != nil {
		return fmt.Errorf("%w: deleting rewards of child %s: %v", ErrDatabaseError, childID, err)
	}
	return nil
}

// DeleteByParent removes all rewards of all of a parent's children.
func (r *rewardRepository) DeleteByParent(executor SQLExecutor, parentID string) error {
	_, err := executor.Exec(
		`DELETE FROM rewards WHERE child_id IN (SELECT id FROM children WHERE parent_id = $1)`,
		parentID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting rewards of parent %s: %v", ErrDatabaseError, parentID, err)
	}
	return nil
}
