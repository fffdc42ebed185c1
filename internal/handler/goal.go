package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/model"
	"github.com/strideapp/stride/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
	validate    *validator.Validate
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validate:    validator.New(),
	}
}

type createGoalRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Description string  `json:"description" validate:"max=500"`
	Status      string  `json:"status" validate:"omitempty,oneof=active completed"`
	TargetDate  *string `json:"targetDate"`
}

// updateGoalRequest is a partial update; absent fields keep their value.
// TargetDate stays raw so an explicit null, which clears the date, can be
// told apart from the field being left out.
type updateGoalRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=150"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Status      *string         `json:"status" validate:"omitempty,oneof=active completed"`
	TargetDate  json.RawMessage `json:"targetDate"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req createGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	err = h.validate.Struct(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	params := service.CreateGoalParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.TargetDate != nil {
		t, err := parseDate(*req.TargetDate)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "targetDate must be RFC 3339 or YYYY-MM-DD", nil)
			return
		}
		params.TargetDate = &t
	}

	goal, err := h.goalService.Create(userID, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"goal": goal})
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if goals == nil {
		goals = []*model.Goal{} // empty list, not null
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	goal, err := h.goalService.ByID(userID, goalID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goal": goal})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var req updateGoalRequest
	err = decodeJSON(r, &req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	err = h.validate.Struct(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	params := service.UpdateGoalParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if len(req.TargetDate) > 0 {
		params.TargetDate.Set = true
		if string(req.TargetDate) != "null" {
			var value string
			if err := json.Unmarshal(req.TargetDate, &value); err != nil {
				writeError(w, r, http.StatusBadRequest, "targetDate must be RFC 3339 or YYYY-MM-DD", nil)
				return
			}
			t, err := parseDate(value)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, "targetDate must be RFC 3339 or YYYY-MM-DD", nil)
				return
			}
			params.TargetDate.Value = &t
		}
	}

	goal, err := h.goalService.Update(userID, goalID, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goal": goal})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err = h.goalService.Delete(userID, goalID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
