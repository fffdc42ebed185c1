package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/service"
)

type authHandler struct {
	authService *service.AuthService
	userService *service.UserService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *authHandler {
	return &authHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account and answers with a fresh bearer token, so the
// client is signed in without a second round trip.
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
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

	user, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
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

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the identity behind the presented token. Clients use it to
// restore a session from a stored token.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"account": user})
}
