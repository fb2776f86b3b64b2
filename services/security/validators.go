package security

import (
	"fmt"
	"strings"
)

// FileMeta describes an upload before its content is read: the client-supplied
// filename, declared content type and byte size.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
}

// FileValidationResult is the outcome of the cheap pre-scan checks. Errors
// accumulate; a failed check never stops the remaining ones.
type FileValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type"`
}

// allowedExtensions are the filename suffixes accepted for upload, matched
// case-insensitively.
var allowedExtensions = []string{".html", ".htm", ".txt"}

// ValidateFile checks an upload's size, declared content type and filename
// extension against the policy. All three checks run unconditionally so the
// caller sees every problem at once. These checks run before any scan;
// oversized input never reaches pattern matching.
func ValidateFile(meta FileMeta, policy Policy) FileValidationResult {
	errs := []string{}

	if meta.Size > int64(policy.MaxContentSize) {
		errs = append(errs, fmt.Sprintf("file size %d exceeds maximum %d", meta.Size, policy.MaxContentSize))
	}

	if !policy.ContentTypeAllowed(meta.ContentType) {
		errs = append(errs, fmt.Sprintf("unsupported content type: %s", meta.ContentType))
	}

	name := strings.ToLower(meta.Name)
	extOK := false
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(name, ext) {
			extOK = true
			break
		}
	}
	if !extOK {
		errs = append(errs, fmt.Sprintf("unsupported file extension: %s", meta.Name))
	}

	return FileValidationResult{
		IsValid:     len(errs) == 0,
		Errors:      errs,
		Size:        meta.Size,
		ContentType: meta.ContentType,
	}
}

// ValidateStringContent checks inline content against a byte-size limit and
// rejects blank input. The content type is always reported as text/html;
// inline submissions have no declared type of their own.
func ValidateStringContent(content string, maxSize int) FileValidationResult {
	errs := []string{}

	if len(content) > maxSize {
		errs = append(errs, fmt.Sprintf("content size %d exceeds limit %d", len(content), maxSize))
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, "content is empty")
	}

	return FileValidationResult{
		IsValid:     len(errs) == 0,
		Errors:      errs,
		Size:        int64(len(content)),
		ContentType: "text/html",
	}
}
