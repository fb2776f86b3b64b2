package security

import (
	"strings"
	"testing"
)

func TestValidateFile(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name        string
		meta        FileMeta
		expectValid bool
		wantErrs    []string // substrings expected in errors
	}{
		{
			name:        "valid html upload",
			meta:        FileMeta{Name: "demo.html", ContentType: "text/html", Size: 1024},
			expectValid: true,
		},
		{
			name:        "valid txt upload with upper-case extension",
			meta:        FileMeta{Name: "NOTES.TXT", ContentType: "text/plain", Size: 10},
			expectValid: true,
		},
		{
			name:        "oversized file",
			meta:        FileMeta{Name: "demo.html", ContentType: "text/html", Size: int64(policy.MaxContentSize) + 1},
			expectValid: false,
			wantErrs:    []string{"exceeds maximum"},
		},
		{
			name:        "unsupported content type",
			meta:        FileMeta{Name: "demo.html", ContentType: "application/javascript", Size: 10},
			expectValid: false,
			wantErrs:    []string{"unsupported content type"},
		},
		{
			name:        "unsupported extension",
			meta:        FileMeta{Name: "demo.svg", ContentType: "text/html", Size: 10},
			expectValid: false,
			wantErrs:    []string{"unsupported file extension"},
		},
		{
			name:        "all checks fail and accumulate",
			meta:        FileMeta{Name: "x.exe", ContentType: "application/octet-stream", Size: int64(policy.MaxContentSize) + 1},
			expectValid: false,
			wantErrs:    []string{"exceeds maximum", "unsupported content type", "unsupported file extension"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateFile(tt.meta, policy)

			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, want %v (errors: %v)", result.IsValid, tt.expectValid, result.Errors)
			}
			if result.Size != tt.meta.Size {
				t.Errorf("Size = %d, want %d", result.Size, tt.meta.Size)
			}
			if result.ContentType != tt.meta.ContentType {
				t.Errorf("ContentType = %q, want %q", result.ContentType, tt.meta.ContentType)
			}
			for _, substr := range tt.wantErrs {
				if !hasFinding(result.Errors, substr) {
					t.Errorf("errors missing %q: %v", substr, result.Errors)
				}
			}
		})
	}
}

func TestValidateStringContent(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		maxSize     int
		expectValid bool
		wantErrs    []string
	}{
		{
			name:        "valid content",
			content:     "<p>hello</p>",
			maxSize:     DefaultMaxContentSize,
			expectValid: true,
		},
		{
			name:        "empty content",
			content:     "",
			maxSize:     DefaultMaxContentSize,
			expectValid: false,
			wantErrs:    []string{"content is empty"},
		},
		{
			name:        "whitespace-only content",
			content:     "  \n\t ",
			maxSize:     DefaultMaxContentSize,
			expectValid: false,
			wantErrs:    []string{"content is empty"},
		},
		{
			name:        "oversized content measured in bytes",
			content:     "🎨🎨🎨",
			maxSize:     10,
			expectValid: false,
			wantErrs:    []string{"content size 12 exceeds limit 10"},
		},
		{
			name:        "oversized and checked without short-circuit",
			content:     strings.Repeat(" ", 32),
			maxSize:     16,
			expectValid: false,
			wantErrs:    []string{"exceeds limit", "content is empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateStringContent(tt.content, tt.maxSize)

			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, want %v (errors: %v)", result.IsValid, tt.expectValid, result.Errors)
			}
			if result.ContentType != "text/html" {
				t.Errorf("ContentType = %q, want text/html", result.ContentType)
			}
			if result.Size != int64(len(tt.content)) {
				t.Errorf("Size = %d, want %d", result.Size, len(tt.content))
			}
			for _, substr := range tt.wantErrs {
				if !hasFinding(result.Errors, substr) {
					t.Errorf("errors missing %q: %v", substr, result.Errors)
				}
			}
		})
	}
}
