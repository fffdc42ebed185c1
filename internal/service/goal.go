package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/strideapp/stride/internal/model"
	"github.com/strideapp/stride/internal/repository"
)

// Limits are in characters, not bytes.
const (
	maxTitleLength       = 150
	maxDescriptionLength = 500
	maxNotesLength       = 500
)

type CreateGoalParams struct {
	Title       string
	Description string
	Status      string
	TargetDate  *time.Time
}

// OptionalTime tells a field supplied as null (Set, nil Value) apart from
// one left out entirely.
type OptionalTime struct {
	Value *time.Time
	Set   bool
}

// UpdateGoalParams carries a partial update. Nil means the field was not
// supplied and keeps its current value; a set TargetDate with a nil Value
// clears the stored date.
type UpdateGoalParams struct {
	Title       *string
	Description *string
	Status      *string
	TargetDate  OptionalTime
}

type LogProgressParams struct {
	Date  *time.Time
	Notes string
	Value *float64
}

type GoalService struct {
	repo         repository.GoalRepository
	progressRepo repository.ProgressRepository
}

func NewGoalService(repo repository.GoalRepository, progressRepo repository.ProgressRepository) *GoalService {
	return &GoalService{
		repo:         repo,
		progressRepo: progressRepo,
	}
}

func validateGoalFields(title, description, status string) []string {
	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		problems = append(problems, fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		problems = append(problems, fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	if status != model.GoalStatusActive && status != model.GoalStatusCompleted {
		problems = append(problems, "status must be active or completed")
	}
	return problems
}

// toUTC copies an optional time into UTC. Dates order by their stored
// text, so every persisted timestamp must carry the same offset.
func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (s *GoalService) Create(userID string, params CreateGoalParams) (*model.Goal, error) {
	title := strings.TrimSpace(params.Title)
	status := params.Status
	if status == "" {
		status = model.GoalStatusActive
	}

	problems := validateGoalFields(title, params.Description, status)
	if len(problems) > 0 {
		return nil, NewValidationError(problems...)
	}

	now := time.Now().UTC()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: params.Description,
		Status:      status,
		TargetDate:  toUTC(params.TargetDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

// Update applies only the supplied fields. The goal is loaded owner-scoped
// first, so another account's goal reads as ErrGoalNotFound.
func (s *GoalService) Update(userID, goalID string, params UpdateGoalParams) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		goal.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		goal.Description = *params.Description
	}
	if params.Status != nil {
		goal.Status = *params.Status
	}
	if params.TargetDate.Set {
		goal.TargetDate = toUTC(params.TargetDate.Value)
	}

	problems := validateGoalFields(goal.Title, goal.Description, goal.Status)
	if len(problems) > 0 {
		return nil, NewValidationError(problems...)
	}

	goal.UpdatedAt = time.Now().UTC()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes the goal row first, then its progress entries. The two
// statements are not wrapped in a transaction; a failure between them
// leaves orphaned entries behind a goal that no longer exists, which is
// logged loudly instead of failing the already-effective delete.
func (s *GoalService) Delete(userID, goalID string) error {
	err := s.repo.Delete(userID, goalID)
	if err != nil {
		return err
	}

	removed, err := s.progressRepo.DeleteByGoal(goalID)
	if err != nil {
		slog.Error("failed to cascade progress entries after goal delete", "error", err, "goal_id", goalID)
		return nil
	}

	slog.Info("goal deleted", "goal_id", goalID, "entries_removed", removed)
	return nil
}

// LogProgress records a dated entry against an owned goal. The owner-scoped
// goal load doubles as the ownership check, so the entry's owner always
// equals the goal's owner.
func (s *GoalService) LogProgress(userID, goalID string, params LogProgressParams) (*model.ProgressEntry, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(params.Notes) > maxNotesLength {
		return nil, NewValidationError(fmt.Sprintf("notes must be at most %d characters", maxNotesLength))
	}

	now := time.Now().UTC()
	date := now
	if params.Date != nil {
		date = params.Date.UTC()
	}

	entry := &model.ProgressEntry{
		ID:        uuid.New().String(),
		UserID:    goal.UserID,
		GoalID:    goal.ID,
		Date:      date,
		Notes:     params.Notes,
		Value:     params.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.progressRepo.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress entry: %w", err)
	}

	return entry, nil
}

func (s *GoalService) ProgressByGoal(userID, goalID string) ([]*model.ProgressEntry, error) {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.progressRepo.ByGoal(goalID)
}
