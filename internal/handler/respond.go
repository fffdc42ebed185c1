package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/repository"
	"github.com/strideapp/stride/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorBody is the uniform error envelope. Detail is populated only in
// development; production clients get the message alone.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	body := errorBody{Message: message}

	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.IsDevelopment() && err != nil {
		body.Detail = err.Error()
	}

	writeJSON(w, status, body)
}

// respondServiceError maps domain errors onto the HTTP taxonomy. Anything
// unrecognized is logged with full detail server-side and surfaces as a
// generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error(), nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, r, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, service.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, repository.ErrGoalNotFound):
		writeError(w, r, http.StatusNotFound, "goal not found", nil)
	case errors.Is(err, repository.ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, "account not found", nil)
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "something went wrong", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

// validationMessage flattens validator complaints into one client-facing
// message listing every failed field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// pathID validates an {id} path segment before it reaches a query, so a
// malformed id reads as 400 rather than 404.
func pathID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	_, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseDate accepts RFC 3339 or a bare YYYY-MM-DD day. Offsets are
// normalized away; stored dates must share one zone for ordering to hold.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
