// Package app wires the application's dependencies together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/auth"
	"github.com/canvashub/content-gateway/config"
	"github.com/canvashub/content-gateway/middleware"
	"github.com/canvashub/content-gateway/repositories"
	"github.com/canvashub/content-gateway/repositories/postgres"
	"github.com/canvashub/content-gateway/services/security"
	"github.com/canvashub/content-gateway/services/submission"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Submissions repositories.SubmissionRepository
	TxManager   repositories.TransactionManager

	// Services
	SubmissionService *submission.Service

	// Auth
	TokenManager   *auth.TokenManager
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	deps.initRepositories()

	// Initialize services
	deps.initServices(cfg)

	// Initialize admin token auth
	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Submissions = repos.Submissions
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initServices builds the submission service around the security engine
func (d *Dependencies) initServices(cfg *config.Config) {
	policy := buildPolicy(cfg)

	d.SubmissionService = submission.NewService(d.Submissions, d.TxManager, policy, d.Logger)

	d.Logger.Info("submission service initialized",
		zap.Int("max_content_size", policy.MaxContentSize))
}

// buildPolicy starts from the default policy and applies config overrides.
// The config carries byte counts as int64; the engine measures content with
// len(), so the policy limit is an int.
func buildPolicy(cfg *config.Config) security.Policy {
	policy := security.DefaultPolicy()
	if cfg.Security.MaxContentSize > 0 {
		policy.MaxContentSize = int(cfg.Security.MaxContentSize)
	}
	return policy
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	if cfg.Auth.AdminSecret == "" {
		d.Logger.Warn("admin token secret not configured, admin endpoints disabled")
		// Reject-all validator so protected routes return 401
		d.AuthMiddleware = middleware.NewAuthMiddleware(&rejectAllValidator{}, d.Logger)
		return
	}

	d.TokenManager = auth.NewTokenManager(cfg.Auth.AdminSecret, cfg.Auth.TokenTTL)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenManager, d.Logger)
	d.Logger.Info("admin token auth initialized")
}

// rejectAllValidator rejects all tokens (used when no admin secret is configured)
type rejectAllValidator struct{}

func (*rejectAllValidator) ValidateToken(context.Context, string) (*middleware.Claims, error) {
	return nil, fmt.Errorf("authentication not configured")
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
