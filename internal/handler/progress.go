package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/model"
	"github.com/strideapp/stride/internal/service"
)

type ProgressHandler struct {
	goalService *service.GoalService
	validate    *validator.Validate
}

func NewProgressHandler(goalService *service.GoalService) *ProgressHandler {
	return &ProgressHandler{
		goalService: goalService,
		validate:    validator.New(),
	}
}

type logProgressRequest struct {
	Date  *string  `json:"date"`
	Notes string   `json:"notes" validate:"max=500"`
	Value *float64 `json:"value"`
}

// Log records a progress entry against a goal the caller owns. A goal that
// is absent or belongs to someone else reads as 404 either way.
func (h *ProgressHandler) Log(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, err := pathID(r, "goalID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var req logProgressRequest
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

	params := service.LogProgressParams{
		Notes: req.Notes,
		Value: req.Value,
	}
	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD", nil)
			return
		}
		params.Date = &t
	}

	entry, err := h.goalService.LogProgress(userID, goalID, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"progress": entry})
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, err := pathID(r, "goalID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	entries, err := h.goalService.ProgressByGoal(userID, goalID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*model.ProgressEntry{} // empty list, not null
	}

	writeJSON(w, http.StatusOK, map[string]any{"progressLogs": entries})
}
