package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/centralops/erp-backend/auth"
	"github.com/centralops/erp-backend/config"
	"github.com/centralops/erp-backend/middleware"
	"github.com/centralops/erp-backend/repositories"
	"github.com/centralops/erp-backend/repositories/memory"
	"github.com/centralops/erp-backend/repositories/postgres"
	"github.com/centralops/erp-backend/services"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil when running on the in-memory store
	Logger *zap.Logger

	// Repositories
	Users         repositories.UserRepository
	Employees     repositories.EmployeeRepository
	Notifications repositories.NotificationRepository

	// Auth
	TokenService   *auth.TokenService
	AuthService    *services.AuthService
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStores(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize stores: %w", err)
	}

	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initStores wires the repositories against PostgreSQL, or against the
// in-memory fallback when no database is configured
func (d *Dependencies) initStores(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.HasDatabase() {
		d.Logger.Warn("no database configured, using in-memory store")
		store := memory.NewStore(d.Logger)
		if err := store.SeedDefaultAdmin("admin@example.com", "admin123"); err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		d.Users = store.Users()
		d.Employees = store.Employees()
		d.Notifications = store.Notifications()
		return nil
	}

	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.DB = db
	d.Users = postgres.NewUserRepository(db, d.Logger)
	d.Employees = postgres.NewEmployeeRepository(db, d.Logger)
	d.Notifications = postgres.NewNotificationRepository(db, d.Logger)
	return nil
}

// initAuth wires the token service, auth service and middleware chain
func (d *Dependencies) initAuth(cfg *config.Config) {
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		d.Logger.Warn("JWT_SECRET not set, using insecure default secret")
	}

	d.TokenService = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	d.AuthService = services.NewAuthService(d.Users, d.TokenService, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenService, d.Logger)
}

// Close releases held resources
func (d *Dependencies) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
