package security

import "fmt"

// SecurityReport is a human-facing summary of a scan: headline, the verbatim
// findings and generic remediation guidance.
type SecurityReport struct {
	Summary         string   `json:"summary"`
	Details         []string `json:"details"`
	Recommendations []string `json:"recommendations"`
}

// GenerateSecurityReport scans content and aggregates the findings into a
// report. Details carry the violation and warning strings verbatim, in scan
// order, so callers can substring-match the stable taxonomy tags.
// Recommendations are empty for clean content; violation and warning advice
// are independent and can appear together.
func GenerateSecurityReport(content string, policy Policy) SecurityReport {
	result := Scan(content, policy)

	summary := "content passed security check"
	if !result.IsValid {
		summary = fmt.Sprintf("found %d security issues", len(result.Violations))
	}

	details := make([]string, 0, len(result.Violations)+len(result.Warnings))
	details = append(details, result.Violations...)
	details = append(details, result.Warnings...)

	recommendations := []string{}
	if len(result.Violations) > 0 {
		recommendations = append(recommendations,
			"fix all reported violations before resubmitting",
			"avoid network requests and references to external resources",
			"use safe DOM manipulation such as textContent and createElement",
		)
	}
	if len(result.Warnings) > 0 {
		recommendations = append(recommendations,
			"review warnings: flagged tags are outside the allow-list and may be stripped by the viewer",
		)
	}

	return SecurityReport{
		Summary:         summary,
		Details:         details,
		Recommendations: recommendations,
	}
}
