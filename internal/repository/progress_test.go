package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strideapp/stride/internal/model"
)

func seedEntry(t *testing.T, repo ProgressRepository, userID, goalID string, date, createdAt time.Time, notes string, value *float64) *model.ProgressEntry {
	t.Helper()

	entry := &model.ProgressEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		GoalID:    goalID,
		Date:      date,
		Notes:     notes,
		Value:     value,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(entry))
	return entry
}

func TestProgressRepository_ByGoalNewestFirst(t *testing.T) {
	database := openTestDB(t)
	repo := NewProgressRepository(database)
	owner := seedUser(t, database, "runner@example.com")
	goal := seedGoal(t, database, owner.ID, "Run 5k", time.Now().UTC())

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	value := 2.5
	seedEntry(t, repo, owner.ID, goal.ID, base, base, "first", &value)
	seedEntry(t, repo, owner.ID, goal.ID, base.Add(48*time.Hour), base.Add(time.Minute), "latest", nil)
	seedEntry(t, repo, owner.ID, goal.ID, base.Add(24*time.Hour), base.Add(2*time.Minute), "middle", nil)

	entries, err := repo.ByGoal(goal.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "latest", entries[0].Notes)
	assert.Equal(t, "middle", entries[1].Notes)
	assert.Equal(t, "first", entries[2].Notes)

	require.NotNil(t, entries[2].Value)
	assert.Equal(t, 2.5, *entries[2].Value)
	assert.Nil(t, entries[0].Value)
}

func TestProgressRepository_SameDateBreaksTiesByInsertion(t *testing.T) {
	database := openTestDB(t)
	repo := NewProgressRepository(database)
	owner := seedUser(t, database, "runner@example.com")
	goal := seedGoal(t, database, owner.ID, "Run 5k", time.Now().UTC())

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	seedEntry(t, repo, owner.ID, goal.ID, day, day.Add(time.Minute), "earlier insert", nil)
	seedEntry(t, repo, owner.ID, goal.ID, day, day.Add(2*time.Minute), "later insert", nil)

	entries, err := repo.ByGoal(goal.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "later insert", entries[0].Notes)
	assert.Equal(t, "earlier insert", entries[1].Notes)
}

func TestProgressRepository_DeleteByGoal(t *testing.T) {
	database := openTestDB(t)
	repo := NewProgressRepository(database)
	owner := seedUser(t, database, "runner@example.com")
	goal := seedGoal(t, database, owner.ID, "Run 5k", time.Now().UTC())
	other := seedGoal(t, database, owner.ID, "Stretch daily", time.Now().UTC())

	now := time.Now().UTC()
	seedEntry(t, repo, owner.ID, goal.ID, now, now, "one", nil)
	seedEntry(t, repo, owner.ID, goal.ID, now, now, "two", nil)
	seedEntry(t, repo, owner.ID, other.ID, now, now, "keep", nil)

	removed, err := repo.DeleteByGoal(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := repo.ByGoal(goal.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.ByGoal(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestProgressRepository_DeleteByGoalWithoutEntries(t *testing.T) {
	database := openTestDB(t)
	repo := NewProgressRepository(database)

	removed, err := repo.DeleteByGoal(uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
