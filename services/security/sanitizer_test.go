package security

import (
	"regexp"
	"strings"
	"testing"
)

var (
	residualJSProto   = regexp.MustCompile(`(?i)javascript:`)
	residualEventAttr = regexp.MustCompile(`(?i)\bon[a-zA-Z]+\s*=`)
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     string
		contains string // when set, check containment instead of equality
	}{
		{
			name:    "clean content untouched",
			content: "<div class=\"box\"><p>hello</p></div>",
			want:    "<div class=\"box\"><p>hello</p></div>",
		},
		{
			name:    "double-quoted event handler removed",
			content: `<button onclick="alert(1)">x</button>`,
			want:    `<button >x</button>`,
		},
		{
			name:    "single-quoted event handler removed",
			content: `<img src="a.png" onerror='steal()'>`,
			want:    `<img src="a.png" >`,
		},
		{
			name:    "unquoted event handler removed",
			content: `<div onmouseover=hover()>x</div>`,
			want:    `<div >x</div>`,
		},
		{
			name:     "javascript protocol stripped inside attribute",
			content:  `<a href="javascript:alert(1)">x</a>`,
			contains: `href="alert(1)"`,
		},
		{
			name:    "style with css expression dropped",
			content: `<div style="width:expression(alert(1))">x</div>`,
			want:    `<div >x</div>`,
		},
		{
			name:    "plain style kept",
			content: `<div style="color:red">x</div>`,
			want:    `<div style="color:red">x</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.content)

			if tt.contains != "" {
				if !strings.Contains(got, tt.contains) {
					t.Errorf("Sanitize(%q) = %q, want substring %q", tt.content, got, tt.contains)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestSanitizeOutputProperties(t *testing.T) {
	// Includes inputs where a single removal pass would splice surrounding
	// text into a fresh dangerous construct.
	inputs := []string{
		"",
		"plain text",
		`<a href="javascript:alert(1)">x</a>`,
		`<a href="JAVASCRIPT:alert(1)">x</a>`,
		"jjavascript:avascript:alert(1)",
		"javasjavascript:cript:alert(1)",
		`<div ononclick="a"click="b">x</div>`,
		`<button ONCLICK="x" onClick='y' onclick=z>go</button>`,
		`<img onerror=javascript:x onload="javascript:y">`,
		strings.Repeat("javascript:", 5),
	}

	for _, in := range inputs {
		got := Sanitize(in)

		if residualJSProto.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q still contains javascript:", in, got)
		}
		if residualEventAttr.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q still contains an event handler assignment", in, got)
		}
	}
}

func TestSanitizeIsNotTheGate(t *testing.T) {
	// Sanitizing does not change the scan verdict: the scanner sees the
	// original content and its violation list stays authoritative.
	content := `<button onclick="alert(1)">x</button>`

	if result := Scan(content, DefaultPolicy()); result.IsValid {
		t.Fatal("expected scan to reject the raw content")
	}
	if result := Scan(Sanitize(content), DefaultPolicy()); !result.IsValid {
		t.Errorf("sanitized output should pass the scan, got %v", result.Violations)
	}
}
