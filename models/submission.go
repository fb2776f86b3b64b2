package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the review state of a submission
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// IsValid reports whether the status is a known value
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// Pending submissions are approved or rejected by review; rejected
// submissions may be moved back to pending on resubmission. Approved
// is terminal.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusRejected:
		return next == StatusPending
	}
	return false
}

// Submission represents a user-submitted piece of markup awaiting or past
// review. Content is stored exactly as submitted; the security scan never
// rewrites accepted content.
type Submission struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description,omitempty" db:"description"`
	Author      string           `json:"author,omitempty" db:"author"`
	Content     string           `json:"content" db:"content"`
	ContentType string           `json:"content_type" db:"content_type"`
	Size        int64            `json:"size" db:"size"`
	Status      SubmissionStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Submission model
func (Submission) TableName() string {
	return "submissions"
}

// NewSubmission creates a new pending Submission
func NewSubmission(title, description, author, content, contentType string) *Submission {
	now := time.Now()
	return &Submission{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Author:      author,
		Content:     content,
		ContentType: contentType,
		Size:        int64(len(content)),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
