package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/middleware"
	"github.com/canvashub/content-gateway/services/security"
	"github.com/canvashub/content-gateway/utils"
)

// ValidateContentRequest represents a request to scan content without storing it
type ValidateContentRequest struct {
	Content string `json:"content"`
}

// ValidateContentResponse carries the scan result and the human-readable report
type ValidateContentResponse struct {
	Result security.ValidationResult `json:"result"`
	Report security.SecurityReport   `json:"report"`
}

// Prechecker runs a security scan without persisting anything
type Prechecker interface {
	Precheck(content string) (security.ValidationResult, security.SecurityReport)
}

// SecurityHandler handles content validation HTTP requests
type SecurityHandler struct {
	prechecker Prechecker
	logger     *zap.Logger
}

// NewSecurityHandler creates a new SecurityHandler
func NewSecurityHandler(prechecker Prechecker, logger *zap.Logger) *SecurityHandler {
	return &SecurityHandler{
		prechecker: prechecker,
		logger:     logger,
	}
}

// HandleValidateContent handles POST /api/v1/validate.
// The scan outcome is always a 200; rejected content is data, not an error.
func (h *SecurityHandler) HandleValidateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req ValidateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	result, report := h.prechecker.Precheck(req.Content)

	h.logger.Debug("content validated",
		zap.String("request_id", requestID),
		zap.Bool("valid", result.IsValid),
		zap.Int("violations", len(result.Violations)),
		zap.Int("warnings", len(result.Warnings)))

	_ = utils.WriteOK(w, ValidateContentResponse{
		Result: result,
		Report: report,
	})
}
