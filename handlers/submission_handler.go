package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/middleware"
	"github.com/canvashub/content-gateway/models"
	"github.com/canvashub/content-gateway/repositories"
	"github.com/canvashub/content-gateway/services/submission"
	"github.com/canvashub/content-gateway/utils"
)

// CreateSubmissionRequest represents a request to submit content
type CreateSubmissionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Author      string `json:"author" validate:"max=100"`
	Content     string `json:"content" validate:"required"`
}

// ReviewSubmissionRequest represents a request to change a submission's review state
type ReviewSubmissionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// SubmissionResponse represents a submission in API responses.
// Content is only populated on single-resource reads.
type SubmissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Content     string    `json:"content,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// ListSubmissionsResponse is the paginated list payload
type ListSubmissionsResponse struct {
	Items  []SubmissionResponse `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// SubmissionService defines the interface for submission operations
type SubmissionService interface {
	Submit(ctx context.Context, input submission.SubmitInput) (*models.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	List(ctx context.Context, filter repositories.ListFilter) ([]*models.Submission, int, error)
	Review(ctx context.Context, id uuid.UUID, next models.SubmissionStatus) (*models.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmissionHandler handles submission-related HTTP requests
type SubmissionHandler struct {
	service SubmissionService
	logger  *zap.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(service SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreateSubmission handles POST /api/v1/submissions
func (h *SubmissionHandler) HandleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	sub, err := h.service.Submit(ctx, submission.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Content:     req.Content,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("submission created",
		zap.String("request_id", requestID),
		zap.String("submission_id", sub.ID.String()))

	_ = utils.WriteCreated(w, submissionToResponse(sub, false))
}

// HandleListSubmissions handles GET /api/v1/submissions
func (h *SubmissionHandler) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	filter := repositories.ListFilter{
		Search: r.URL.Query().Get("search"),
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.SubmissionStatus(statusStr)
		filter.Status = &status
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid limit format", nil)
			return
		}
		filter.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid offset format", nil)
			return
		}
		filter.Offset = offset
	}

	subs, total, err := h.service.List(ctx, filter)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	items := make([]SubmissionResponse, len(subs))
	for i, s := range subs {
		items[i] = submissionToResponse(s, false)
	}

	h.logger.Debug("listed submissions",
		zap.String("request_id", requestID),
		zap.Int("count", len(items)),
		zap.Int("total", total))

	_ = utils.WriteOK(w, ListSubmissionsResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// HandleGetSubmission handles GET /api/v1/submissions/{id}
func (h *SubmissionHandler) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid submission ID format", nil)
		return
	}

	sub, err := h.service.Get(ctx, id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, submissionToResponse(sub, true))
}

// HandleReviewSubmission handles POST /api/v1/submissions/{id}/review
func (h *SubmissionHandler) HandleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid submission ID format", nil)
		return
	}

	var req ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	sub, err := h.service.Review(ctx, id, models.SubmissionStatus(req.Status))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	claims := middleware.GetClaimsFromContext(ctx)
	reviewer := ""
	if claims != nil {
		reviewer = claims.Subject
	}
	h.logger.Info("submission reviewed",
		zap.String("request_id", requestID),
		zap.String("submission_id", id.String()),
		zap.String("status", req.Status),
		zap.String("reviewer", reviewer))

	_ = utils.WriteOK(w, submissionToResponse(sub, false))
}

// HandleDeleteSubmission handles DELETE /api/v1/submissions/{id}
func (h *SubmissionHandler) HandleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid submission ID format", nil)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("submission deleted",
		zap.String("request_id", requestID),
		zap.String("submission_id", id.String()))

	utils.WriteNoContent(w)
}

// submissionToResponse converts a Submission model to a SubmissionResponse
func submissionToResponse(s *models.Submission, includeContent bool) SubmissionResponse {
	resp := SubmissionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Author:      s.Author,
		ContentType: s.ContentType,
		Size:        s.Size,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if includeContent {
		resp.Content = s.Content
	}
	return resp
}
