package security

import "regexp"

var (
	styleExprDouble = regexp.MustCompile(`(?i)\bstyle\s*=\s*"[^"]*expression\([^"]*"`)
	styleExprSingle = regexp.MustCompile(`(?i)\bstyle\s*=\s*'[^']*expression\([^']*'`)
	eventAttrDouble = regexp.MustCompile(`(?i)\bon[a-zA-Z]+\s*=\s*"[^"]*"`)
	eventAttrSingle = regexp.MustCompile(`(?i)\bon[a-zA-Z]+\s*=\s*'[^']*'`)
	eventAttrBare   = regexp.MustCompile(`(?i)\bon[a-zA-Z]+\s*=\s*[^\s>'"]*`)
	jsProtoLiteral  = regexp.MustCompile(`(?i)javascript:`)
)

var sanitizePasses = []*regexp.Regexp{
	styleExprDouble,
	styleExprSingle,
	eventAttrDouble,
	eventAttrSingle,
	eventAttrBare,
	jsProtoLiteral,
}

// Sanitize strips known-dangerous constructs from content: event-handler
// attributes, literal "javascript:" substrings and style attributes carrying
// CSS expressions. It is a best-effort, lossy display transform; the
// scanner's violation list, not this rewrite, decides acceptance.
//
// Removal runs to a fixed point: deleting one occurrence can splice the
// surrounding text into a new occurrence, so passes repeat until nothing
// matches. Guarantees for any input: the output contains no substring
// matching (?i)javascript: and none matching (?i)\bon[a-zA-Z]+\s*=.
func Sanitize(content string) string {
	out := content
	for {
		prev := out
		for _, p := range sanitizePasses {
			out = p.ReplaceAllString(out, "")
		}
		if out == prev {
			return out
		}
	}
}
