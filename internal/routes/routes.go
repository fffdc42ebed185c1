package routes

import (
	"net/http"

	"github.com/strideapp/stride/internal/app"
	"github.com/strideapp/stride/internal/handler"
	"github.com/strideapp/stride/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	goal := handler.NewGoalHandler(app.GoalService)
	progress := handler.NewProgressHandler(app.GoalService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Health
	mux.HandleFunc("GET /healthz", handler.Health)

	// Auth - credential endpoints (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	requireAuth := middleware.RequireAuth(app.AuthService, app.UserService)

	mux.HandleFunc("GET /api/auth/me", requireAuth(auth.Me))

	// Goals
	mux.HandleFunc("POST /api/goals", requireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals", requireAuth(goal.List))
	mux.HandleFunc("GET /api/goals/{id}", requireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", requireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", requireAuth(goal.Delete))

	// Progress
	mux.HandleFunc("POST /api/goals/{goalID}/progress", requireAuth(progress.Log))
	mux.HandleFunc("GET /api/goals/{goalID}/progress", requireAuth(progress.List))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (error responses read it for detail mode)
		middleware.RequestLogging,
		middleware.Recover, // Recover sits inside logging so panics still log as 500s
	)

	return handler
}
