package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/handlers"
	"github.com/centralops/erp-backend/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/login", handlers.LoginHandler(deps))

		// Current user (any authenticated principal)
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/auth/me", handlers.CurrentUserHandler(deps))
		})

		// Notification feed: public but personalized when a valid token is sent
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/notifications", handlers.ListNotificationsHandler(deps))
		})

		// Posting notifications requires an HR or admin role
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireAnyRole("admin", "manager"))
			r.Post("/notifications", handlers.CreateNotificationHandler(deps))
		})

		// Employee records (HR): reads for managers and admins, writes for admins
		r.Route("/employees", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAnyRole("admin", "manager"))
				r.Get("/", handlers.ListEmployeesHandler(deps))
				r.Get("/{id}", handlers.GetEmployeeHandler(deps))
			})

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireRole("admin"))
				r.Post("/", handlers.CreateEmployeeHandler(deps))
				r.Put("/{id}", handlers.UpdateEmployeeHandler(deps))
				r.Delete("/{id}", handlers.DeleteEmployeeHandler(deps))
			})
		})

		// User account management (admin only)
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireAdmin)
			r.Get("/", handlers.ListUsersHandler(deps))
			r.Post("/", handlers.CreateUserHandler(deps))
			r.Get("/{id}", handlers.GetUserHandler(deps))
			r.Put("/{id}", handlers.UpdateUserHandler(deps))
			r.Delete("/{id}", handlers.DeleteUserHandler(deps))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Route not found")
	})

	return r
}
