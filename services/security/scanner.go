// Package security implements the content security engine for user-submitted
// markup: a policy-parameterized scanner that accumulates hard violations and
// soft warnings, a best-effort sanitizer, pre-scan validators and a report
// generator. Every operation is a pure function of (content, policy) with no
// I/O and no shared state, so concurrent use needs no locking.
//
// The scanner is a heuristic, pattern-based gate. It does not parse HTML and
// it cannot detect obfuscated or dynamically constructed payloads; the
// violation list is the sole authority for accept/reject decisions.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult is the outcome of a scan. "Content is unsafe" is a normal
// outcome carried by this record, never an error. Violations block
// acceptance; warnings never do.
//
// Invariant: IsValid == (len(Violations) == 0). SanitizedContent carries the
// unmodified input when the content is valid and is empty otherwise; the
// scanner never rewrites what it accepts.
type ValidationResult struct {
	IsValid          bool     `json:"is_valid"`
	Violations       []string `json:"violations"`
	Warnings         []string `json:"warnings"`
	SanitizedContent string   `json:"sanitized_content,omitempty"`
}

// maxPatternExcerpts caps the matched substrings quoted per pattern so
// violation messages stay short.
const maxPatternExcerpts = 3

var (
	openingTagPattern = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9]*)`)
	attrAssignPattern = regexp.MustCompile(`([a-zA-Z-]+)\s*=`)
	eventAttrPattern  = regexp.MustCompile(`(?i)^on[a-zA-Z]+$`)
	jsProtoValue      = regexp.MustCompile(`^\s*["']?\s*javascript:`)

	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script>`)
	styleBlockPattern  = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style>`)
	scriptSrcPattern   = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']?([^"'\s>]+)`)
	cssImportPattern   = regexp.MustCompile(`(?i)@import\s+url\(\s*["']?https?://`)
)

// Scan applies the policy's rules to content. All checks run unconditionally
// and accumulate findings; there is no short-circuiting on first failure.
// The check order is fixed and observable: size, whole-document pattern
// scan, tag inventory, attribute inventory, script blocks, style blocks.
func Scan(content string, policy Policy) ValidationResult {
	violations := []string{}
	warnings := []string{}

	// 1. Size. len() is the UTF-8 byte length, which is what the limit is
	// defined over; multi-byte content must not be undercounted.
	if len(content) > policy.MaxContentSize {
		violations = append(violations,
			fmt.Sprintf("FILE_TOO_LARGE: size %d exceeds limit %d", len(content), policy.MaxContentSize))
	}

	// 2. Whole-document forbidden-pattern scan.
	violations = append(violations, patternFindings(content, policy.ForbiddenPatterns, "FORBIDDEN_PATTERN")...)

	// 3. Tag inventory. Tag names come from tag-boundary scanning, not a
	// parse; unknown tags are advisory only.
	seenTags := map[string]bool{}
	for _, m := range openingTagPattern.FindAllStringSubmatch(content, -1) {
		name := strings.ToLower(m[1])
		if seenTags[name] {
			continue
		}
		seenTags[name] = true
		if !policy.TagAllowed(name) {
			warnings = append(warnings, "SUSPICIOUS_TAG: "+name)
		}
	}

	// 4. Attribute inventory: event-handler attributes and javascript:
	// protocol values are hard failures wherever they appear.
	seenAttrs := map[string]bool{}
	jsProtoFound := false
	for _, idx := range attrAssignPattern.FindAllStringSubmatchIndex(content, -1) {
		name := strings.ToLower(content[idx[2]:idx[3]])
		if eventAttrPattern.MatchString(name) && !seenAttrs[name] {
			seenAttrs[name] = true
			violations = append(violations, "DANGEROUS_ATTRIBUTE: "+name)
		}
		if !jsProtoFound && jsProtoValue.MatchString(content[idx[1]:]) {
			jsProtoFound = true
			violations = append(violations, "JAVASCRIPT_PROTOCOL")
		}
	}

	// 5. Script blocks: the pattern bank runs again over each block's inner
	// text. The same match surfacing as both FORBIDDEN_PATTERN and
	// MALICIOUS_SCRIPT is expected.
	for _, m := range scriptBlockPattern.FindAllStringSubmatch(content, -1) {
		attrs, inner := m[1], m[2]
		violations = append(violations, patternFindings(inner, policy.ForbiddenPatterns, "MALICIOUS_SCRIPT")...)
		if src := scriptSrcPattern.FindStringSubmatch(attrs); src != nil {
			if strings.HasPrefix(strings.ToLower(src[1]), "http") {
				violations = append(violations, "EXTERNAL_SCRIPT: "+src[1])
			}
		}
	}

	// 6. Style blocks.
	for _, m := range styleBlockPattern.FindAllStringSubmatch(content, -1) {
		inner := m[1]
		lower := strings.ToLower(inner)
		if strings.Contains(lower, "javascript:") {
			violations = append(violations, "CSS_JAVASCRIPT")
		}
		if strings.Contains(lower, "expression(") {
			violations = append(violations, "CSS_EXPRESSION")
		}
		if cssImportPattern.MatchString(inner) {
			violations = append(violations, "CSS_EXTERNAL_IMPORT")
		}
	}

	result := ValidationResult{
		IsValid:    len(violations) == 0,
		Violations: violations,
		Warnings:   warnings,
	}
	if result.IsValid {
		result.SanitizedContent = content
	}
	return result
}

// patternFindings runs the ordered pattern bank over text and formats one
// tagged violation per matching pattern, quoting at most maxPatternExcerpts
// matched substrings.
func patternFindings(text string, patterns []*regexp.Regexp, kind string) []string {
	var findings []string
	for _, p := range patterns {
		matches := p.FindAllString(text, maxPatternExcerpts)
		if len(matches) == 0 {
			continue
		}
		findings = append(findings,
			fmt.Sprintf("%s: pattern %s matched: %s", kind, p.String(), strings.Join(matches, ", ")))
	}
	return findings
}
