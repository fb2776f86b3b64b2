package security

import (
	"regexp"
	"strings"
)

// Policy parameterizes a content scan: tag and attribute allow-lists, an
// ordered bank of forbidden patterns, a size limit and the declared content
// types we accept. A Policy is constructed once and passed explicitly into
// every call; it is never mutated.
type Policy struct {
	AllowedTags         map[string]bool
	AllowedAttributes   map[string][]string // tag name or "*" wildcard
	ForbiddenPatterns   []*regexp.Regexp    // ordered, case-insensitive
	MaxContentSize      int
	AllowedContentTypes map[string]bool
}

// AttributeAllowed reports whether an attribute name is allowed on the given
// tag, checking the per-tag list first and then the "*" wildcard. Entries
// ending in "-*" match by prefix (e.g. "data-*" allows any data attribute).
func (p Policy) AttributeAllowed(tag, attr string) bool {
	tag = strings.ToLower(tag)
	attr = strings.ToLower(attr)
	for _, scope := range []string{tag, "*"} {
		for _, allowed := range p.AllowedAttributes[scope] {
			if allowed == attr {
				return true
			}
			if strings.HasSuffix(allowed, "-*") && strings.HasPrefix(attr, strings.TrimSuffix(allowed, "*")) {
				return true
			}
		}
	}
	return false
}

// TagAllowed reports whether a tag name is in the allow-list.
func (p Policy) TagAllowed(tag string) bool {
	return p.AllowedTags[strings.ToLower(tag)]
}

// ContentTypeAllowed reports whether a declared content type is accepted.
func (p Policy) ContentTypeAllowed(contentType string) bool {
	return p.AllowedContentTypes[strings.ToLower(contentType)]
}

// DefaultMaxContentSize is the default content size limit (5 MiB).
const DefaultMaxContentSize = 5 * 1024 * 1024

// defaultForbiddenPatterns is the ordered pattern bank applied to the whole
// document and again to every script block. All patterns are case-insensitive.
// Order is part of the observable contract: violations are reported in the
// order the patterns are listed here.
var defaultForbiddenPatterns = []*regexp.Regexp{
	// Network calls
	regexp.MustCompile(`(?i)fetch\s*\(`),
	regexp.MustCompile(`(?i)XMLHttpRequest`),
	regexp.MustCompile(`(?i)axios\.`),
	regexp.MustCompile(`(?i)\$\.ajax`),
	regexp.MustCompile(`(?i)\$\.get`),
	regexp.MustCompile(`(?i)\$\.post`),
	// Storage access
	regexp.MustCompile(`(?i)document\.cookie`),
	regexp.MustCompile(`(?i)localStorage`),
	regexp.MustCompile(`(?i)sessionStorage`),
	regexp.MustCompile(`(?i)indexedDB`),
	// Dangerous execution
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)Function\s*\(`),
	regexp.MustCompile(`(?i)setTimeout\s*\(\s*["']`),
	regexp.MustCompile(`(?i)setInterval\s*\(\s*["']`),
	// DOM write hazards
	regexp.MustCompile(`(?i)document\.write`),
	regexp.MustCompile(`(?i)document\.writeln`),
	regexp.MustCompile(`(?i)innerHTML\s*=\s*["'][^"']*<script`),
	// Dynamic loading
	regexp.MustCompile(`(?i)\bimport\s*\(`),
	regexp.MustCompile(`(?i)\brequire\s*\(`),
	regexp.MustCompile(`(?i)loadScript`),
	// Navigation
	regexp.MustCompile(`(?i)window\.open`),
	regexp.MustCompile(`(?i)window\.location`),
	regexp.MustCompile(`(?i)location\.href`),
	regexp.MustCompile(`(?i)location\.replace`),
	// Cross-origin form submission
	regexp.MustCompile(`(?i)action\s*=\s*["']https?://`),
	// Realtime channels
	regexp.MustCompile(`(?i)WebSocket`),
	regexp.MustCompile(`(?i)EventSource`),
	// File APIs
	regexp.MustCompile(`(?i)FileReader`),
	regexp.MustCompile(`(?i)FormData`),
	regexp.MustCompile(`(?i)\bBlob\b`),
	regexp.MustCompile(`(?i)URL\.createObjectURL`),
}

// DefaultPolicy returns the policy used for gallery submissions. Callers
// that need different rules build their own Policy and pass it in; the
// default is never mutated.
func DefaultPolicy() Policy {
	return Policy{
		AllowedTags: tagSet(
			"div", "span", "canvas", "script", "style",
			"p", "h1", "h2", "h3", "h4", "h5", "h6",
			"button", "input", "textarea", "select", "option", "label", "form",
			"img", "audio", "video",
			"br", "hr", "ul", "ol", "li",
			"table", "tr", "td", "th", "thead", "tbody",
			"strong", "em", "b", "i", "u", "a",
		),
		AllowedAttributes: map[string][]string{
			"*":        {"class", "id", "style", "data-*"},
			"canvas":   {"width", "height"},
			"input":    {"type", "value", "placeholder", "name", "required", "disabled"},
			"button":   {"type", "disabled"},
			"img":      {"src", "alt", "width", "height"},
			"audio":    {"src", "controls", "autoplay", "loop"},
			"video":    {"src", "controls", "autoplay", "loop", "width", "height"},
			"a":        {"href", "target", "rel"},
			"form":     {"action", "method"},
			"select":   {"name", "required", "disabled"},
			"option":   {"value", "selected"},
			"textarea": {"name", "placeholder", "rows", "cols", "required", "disabled"},
		},
		ForbiddenPatterns: defaultForbiddenPatterns,
		MaxContentSize:    DefaultMaxContentSize,
		AllowedContentTypes: map[string]bool{
			"text/html":  true,
			"text/plain": true,
		},
	}
}

func tagSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
