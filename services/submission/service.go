// Package submission implements the submission workflow around the security
// engine: validate, scan, persist, review, list. The engine decides safety;
// this service decides what happens to the record.
package submission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/models"
	"github.com/canvashub/content-gateway/repositories"
	"github.com/canvashub/content-gateway/services"
	"github.com/canvashub/content-gateway/services/security"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service handles submission lifecycle operations
type Service struct {
	repo   repositories.SubmissionRepository
	tx     repositories.TransactionManager
	policy security.Policy
	logger *zap.Logger
}

// NewService creates a new submission service. The policy is captured once
// and passed into every scan; it is never mutated.
func NewService(repo repositories.SubmissionRepository, tx repositories.TransactionManager, policy security.Policy, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		policy: policy,
		logger: logger,
	}
}

// SubmitInput carries a new submission's fields
type SubmitInput struct {
	Title       string
	Description string
	Author      string
	Content     string
}

// Submit validates and scans the content, then persists it as pending.
// Unsafe content is a normal outcome: it surfaces as a policy_violation
// domain error carrying the verbatim violation and warning strings, so the
// transport layer can build a structured rejection payload. Accepted content
// is stored exactly as submitted.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.Submission, error) {
	check := security.ValidateStringContent(input.Content, s.policy.MaxContentSize)
	if !check.IsValid {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "content failed validation", nil).
			WithDetail("errors", check.Errors)
	}

	result := security.Scan(input.Content, s.policy)
	if !result.IsValid {
		s.logger.Info("submission rejected by security scan",
			zap.String("title", input.Title),
			zap.Int("violations", len(result.Violations)),
			zap.Int("warnings", len(result.Warnings)))
		return nil, services.NewDomainError(services.ErrorTypePolicyViolation, "content rejected by security policy", nil).
			WithDetail("violations", result.Violations).
			WithDetail("warnings", result.Warnings)
	}

	sub := models.NewSubmission(input.Title, input.Description, input.Author, input.Content, check.ContentType)
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, services.NewDomainError(services.ErrorTypeInternal, "failed to store submission", err)
	}

	s.logger.Info("submission accepted",
		zap.String("id", sub.ID.String()),
		zap.Int64("size", sub.Size),
		zap.Int("warnings", len(result.Warnings)))

	return sub, nil
}

// Precheck runs the same validation a submission would get, without
// persisting anything. Used by the pre-submission endpoint so clients can
// check content before upload.
func (s *Service) Precheck(content string) (security.ValidationResult, security.SecurityReport) {
	return security.Scan(content, s.policy), security.GenerateSecurityReport(content, s.policy)
}

// Get retrieves a submission by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeNotFound, "submission not found", err)
	}
	return sub, nil
}

// List returns a page of submissions and the total count. Page bounds are
// clamped to sane values.
func (s *Service) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Submission, int, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, services.NewDomainError(services.ErrorTypeValidation, "invalid status filter", nil).
			WithDetail("status", string(*filter.Status))
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	subs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, services.NewDomainError(services.ErrorTypeInternal, "failed to list submissions", err)
	}
	return subs, total, nil
}

// Review moves a submission to a new review state, enforcing the status
// transition table. The read and the update run in one transaction so
// concurrent reviews cannot both apply.
func (s *Service) Review(ctx context.Context, id uuid.UUID, next models.SubmissionStatus) (*models.Submission, error) {
	if !next.IsValid() {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "invalid submission status", nil).
			WithDetail("status", string(next))
	}

	var reviewed *models.Submission
	err := s.tx.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		sub, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return services.NewDomainError(services.ErrorTypeNotFound, "submission not found", err)
		}

		if !sub.Status.CanTransitionTo(next) {
			return services.NewDomainError(services.ErrorTypeConflict, "invalid status transition", nil).
				WithDetail("from", string(sub.Status)).
				WithDetail("to", string(next))
		}

		now := time.Now()
		if err := s.repo.UpdateStatus(txCtx, id, next, now); err != nil {
			return services.NewDomainError(services.ErrorTypeInternal, "failed to update submission status", err)
		}

		sub.Status = next
		sub.UpdatedAt = now
		reviewed = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission reviewed",
		zap.String("id", id.String()),
		zap.String("status", string(next)))

	return reviewed, nil
}

// Delete removes a submission
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return services.NewDomainError(services.ErrorTypeNotFound, "submission not found", err)
	}
	s.logger.Info("submission deleted", zap.String("id", id.String()))
	return nil
}
