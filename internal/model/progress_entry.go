package model

import (
	"time"
)

// ProgressEntry is a dated log line against a goal. Entries are immutable
// once written; they disappear only when their goal is deleted.
type ProgressEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	GoalID    string    `db:"goal_id" json:"goalId"`
	Date      time.Time `db:"date" json:"date"`
	Notes     string    `db:"notes" json:"notes"`
	Value     *float64  `db:"value" json:"value,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
