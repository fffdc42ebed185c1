package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/strideapp/stride/internal/model"
)

// ProgressRepository is keyed by goal id only. Ownership is checked one
// layer up by loading the goal owner-scoped before any entry operation.
type ProgressRepository interface {
	Create(entry *model.ProgressEntry) error
	ByGoal(goalID string) ([]*model.ProgressEntry, error)
	DeleteByGoal(goalID string) (int64, error)
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(entry *model.ProgressEntry) error {
	query := `INSERT INTO progress_entries (id, user_id, goal_id, date, notes, value, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.GoalID,
		entry.Date,
		entry.Notes,
		entry.Value,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// ByGoal lists entries newest first, with insertion order breaking date ties.
func (r *progressRepository) ByGoal(goalID string) ([]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	query := `SELECT * FROM progress_entries WHERE goal_id = $1 ORDER BY date DESC, created_at DESC`

	err := r.db.Select(&entries, query, goalID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// DeleteByGoal removes every entry of a goal and reports how many went.
// Zero is not an error; goals without entries are normal.
func (r *progressRepository) DeleteByGoal(goalID string) (int64, error) {
	query := `DELETE FROM progress_entries WHERE goal_id = $1`

	result, err := r.db.Exec(query, goalID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
