package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/canvashub/content-gateway/app"
	"github.com/canvashub/content-gateway/auth"
	"github.com/canvashub/content-gateway/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var sqlDB *sql.DB
	if deps.DB != nil {
		sqlDB = deps.DB.DB
	}
	healthHandler := handlers.NewHealthHandler(sqlDB, deps.Logger)
	securityHandler := handlers.NewSecurityHandler(deps.SubmissionService, deps.Logger)
	submissionHandler := handlers.NewSubmissionHandler(deps.SubmissionService, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Pre-submission scan, no auth and no persistence
		r.Post("/validate", securityHandler.HandleValidateContent)

		r.Route("/submissions", func(r chi.Router) {
			// Public: submit and browse
			r.Post("/", submissionHandler.HandleCreateSubmission)
			r.Get("/", submissionHandler.HandleListSubmissions)
			r.Get("/{id}", submissionHandler.HandleGetSubmission)

			// Admin: review and delete
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Use(deps.AuthMiddleware.RequireRole(auth.RoleAdmin))
				r.Post("/{id}/review", submissionHandler.HandleReviewSubmission)
				r.Delete("/{id}", submissionHandler.HandleDeleteSubmission)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
