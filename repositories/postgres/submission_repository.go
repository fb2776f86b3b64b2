package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/models"
	"github.com/canvashub/content-gateway/repositories"
)

// SubmissionRepository implements the repositories.SubmissionRepository interface
type SubmissionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *DB, logger *zap.Logger) repositories.SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

const submissionColumns = "id, title, description, author, content, content_type, size, status, created_at, updated_at"

// Create persists a new submission
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (id, title, description, author, content, content_type, size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		submission.ID,
		submission.Title,
		submission.Description,
		submission.Author,
		submission.Content,
		submission.ContentType,
		submission.Size,
		submission.Status,
		submission.CreatedAt,
		submission.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	r.logger.Debug("submission created", zap.String("id", submission.ID.String()))
	return nil
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	submission := &models.Submission{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.Title,
		&submission.Description,
		&submission.Author,
		&submission.Content,
		&submission.ContentType,
		&submission.Size,
		&submission.Status,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("submission not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// List returns a page of submissions plus the total count matching the filter
func (r *SubmissionRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Submission, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	executor := GetExecutor(ctx, r.db)

	var total int
	countQuery := "SELECT COUNT(*) FROM submissions " + where
	if err := executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	listQuery := fmt.Sprintf(`
		SELECT `+submissionColumns+`
		FROM submissions
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, offsetPos)

	rows, err := executor.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission := &models.Submission{}
		err := rows.Scan(
			&submission.ID,
			&submission.Title,
			&submission.Description,
			&submission.Author,
			&submission.Content,
			&submission.ContentType,
			&submission.Size,
			&submission.Status,
			&submission.CreatedAt,
			&submission.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, total, nil
}

// UpdateStatus moves a submission to a new review state
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, updatedAt time.Time) error {
	query := `
		UPDATE submissions
		SET status = $2,
		    updated_at = $3
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("submission not found: %s", id)
	}

	r.logger.Debug("submission status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)))
	return nil
}

// Delete removes a submission
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM submissions WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("submission not found: %s", id)
	}

	r.logger.Debug("submission deleted", zap.String("id", id.String()))
	return nil
}
