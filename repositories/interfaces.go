// Package repositories defines the persistence interfaces consumed by the
// service layer. Implementations live in subpackages (postgres).
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/canvashub/content-gateway/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// ListFilter narrows and pages a submission listing
type ListFilter struct {
	// Status filters by review state when non-nil
	Status *models.SubmissionStatus

	// Search matches case-insensitively against the title when non-empty
	Search string

	Limit  int
	Offset int
}

// SubmissionRepository handles submission data operations
type SubmissionRepository interface {
	// Create persists a new submission
	Create(ctx context.Context, submission *models.Submission) error

	// GetByID retrieves a submission by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)

	// List returns a page of submissions plus the total count matching
	// the filter
	List(ctx context.Context, filter ListFilter) ([]*models.Submission, int, error)

	// UpdateStatus moves a submission to a new review state
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, updatedAt time.Time) error

	// Delete removes a submission
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Submissions SubmissionRepository
}
