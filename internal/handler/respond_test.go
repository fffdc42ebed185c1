package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-10-01T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC), got)

	// An offset input lands on the same instant, in UTC.
	got, err = parseDate("2026-10-01T14:30:00+06:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC), got)

	got, err = parseDate("2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("someday")
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/goals/x", nil)
	req.SetPathValue("id", "7b1e1a9c-9f2f-4c43-a6f5-2e2bce62f1a4")

	id, err := pathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, "7b1e1a9c-9f2f-4c43-a6f5-2e2bce62f1a4", id)

	req.SetPathValue("id", "not-a-uuid")
	_, err = pathID(req, "id")
	assert.EqualError(t, err, "invalid id")

	req.SetPathValue("goalID", "also-not-a-uuid")
	_, err = pathID(req, "goalID")
	assert.EqualError(t, err, "invalid goalID")
}

func TestDecodeJSON(t *testing.T) {
	type form struct {
		Email string `json:"email"`
	}

	var dst form
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"runner@example.com"}`))
	require.NoError(t, decodeJSON(req, &dst))
	assert.Equal(t, "runner@example.com", dst.Email)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	err := decodeJSON(req, &form{})
	assert.EqualError(t, err, "request body is required")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.co","role":"admin"}`))
	err = decodeJSON(req, &form{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestValidationMessage(t *testing.T) {
	type goalForm struct {
		Title  string `validate:"required,max=150"`
		Status string `validate:"oneof=active completed"`
	}

	err := validator.New().Struct(goalForm{Status: "paused"})
	require.Error(t, err)

	msg := validationMessage(err)
	assert.Contains(t, msg, "title is required")
	assert.Contains(t, msg, "status must be one of: active completed")

	assert.Equal(t, "invalid request", validationMessage(errors.New("plain error")))
}
