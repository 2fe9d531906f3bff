// Package merge turns a merger agent's reply into a validated merge report
// and decides whether the merge can proceed unattended.
package merge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okheath/crew/internal/models"
)

// Defaults applied to fields the model left out of its report.
const (
	defaultFile        = "unknown"
	defaultExplanation = "No explanation"
	defaultSummary     = "No summary provided"
)

// ParseOutput extracts and validates the merge report embedded in a reply.
// It looks for a fenced JSON block first, then a bare top-level object.
// Missing optional fields are defaulted; a reply with no recognizable JSON
// payload, or one that fails to parse, yields (nil, false) — explicit
// absence, never a defaulted empty report.
func ParseOutput(reply string) (*models.MergeOutput, bool) {
	span, ok := extractJSONSpan(reply)
	if !ok {
		return nil, false
	}

	var out models.MergeOutput
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return nil, false
	}

	applyDefaults(&out)
	return &out, true
}

// ContainsOutput reports whether the reply carries a structurally
// recognizable merge report: a parseable JSON object with both a "success"
// and a "conflicts" key. Used as the merger's implicit completion signal.
func ContainsOutput(reply string) bool {
	span, ok := extractJSONSpan(reply)
	if !ok {
		return false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return false
	}

	_, hasSuccess := raw["success"]
	_, hasConflicts := raw["conflicts"]
	return hasSuccess && hasConflicts
}

// CanAutoComplete decides whether a merge may be finalized without human
// review. The policy is conjunctive and fail-closed: one disqualifying
// conflict blocks the whole merge.
func CanAutoComplete(conflicts []models.MergeConflict) bool {
	for _, c := range conflicts {
		if c.Severity == models.SeverityCritical || c.Severity == models.SeverityComplex {
			return false
		}
		if c.NeedsManualReview {
			return false
		}
		if c.Type == models.ConflictTypeDeleteModify {
			return false
		}
	}
	return true
}

// FilesNeedingReview returns the distinct file paths a human must look at:
// flagged conflicts plus anything complex or critical.
func FilesNeedingReview(conflicts []models.MergeConflict) []string {
	seen := map[string]bool{}
	var files []string
	for _, c := range conflicts {
		if !c.NeedsManualReview && c.Severity != models.SeverityCritical && c.Severity != models.SeverityComplex {
			continue
		}
		if seen[c.File] {
			continue
		}
		seen[c.File] = true
		files = append(files, c.File)
	}
	return files
}

// ConflictCounts aggregates conflicts by severity and type.
type ConflictCounts struct {
	Total      int
	BySeverity map[models.ConflictSeverity]int
	ByType     map[models.ConflictType]int
}

// GetConflictCounts tallies the conflict list.
func GetConflictCounts(conflicts []models.MergeConflict) ConflictCounts {
	counts := ConflictCounts{
		Total:      len(conflicts),
		BySeverity: map[models.ConflictSeverity]int{},
		ByType:     map[models.ConflictType]int{},
	}
	for _, c := range conflicts {
		counts.BySeverity[c.Severity]++
		counts.ByType[c.Type]++
	}
	return counts
}

// severityOrder renders breakdowns in ascending severity.
var severityOrder = []models.ConflictSeverity{
	models.SeveritySimple,
	models.SeverityModerate,
	models.SeverityComplex,
	models.SeverityCritical,
}

// Summarize renders a human-readable merge summary.
func Summarize(out *models.MergeOutput) string {
	var b strings.Builder

	status := "FAILED"
	if out.Success {
		status = "SUCCESS"
	}
	fmt.Fprintf(&b, "Merge status: %s\n", status)
	fmt.Fprintf(&b, "Conflicts: %d total, %d unresolved\n", len(out.Conflicts), out.UnresolvedCount)

	counts := GetConflictCounts(out.Conflicts)
	for _, sev := range severityOrder {
		if n := counts.BySeverity[sev]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", sev, n)
		}
	}

	if files := FilesNeedingReview(out.Conflicts); len(files) > 0 {
		b.WriteString("Needs human review:\n")
		for _, f := range files {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}

	if out.RequiresHumanReview {
		b.WriteString("This merge requires human review before completion.\n")
	}

	if out.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", out.Summary)
	}

	return b.String()
}

// applyDefaults fills the optional fields the model omitted.
func applyDefaults(out *models.MergeOutput) {
	if out.Summary == "" {
		out.Summary = defaultSummary
	}
	for i := range out.Conflicts {
		c := &out.Conflicts[i]
		if c.File == "" {
			c.File = defaultFile
		}
		if c.Type == "" {
			c.Type = models.ConflictTypeContent
		}
		if c.Severity == "" {
			c.Severity = models.SeverityModerate
		}
	}
	for i := range out.Resolutions {
		r := &out.Resolutions[i]
		if r.File == "" {
			r.File = defaultFile
		}
		if r.Strategy == "" {
			r.Strategy = models.StrategyManual
		}
		if r.Explanation == "" {
			r.Explanation = defaultExplanation
		}
	}
}

// extractJSONSpan finds the JSON payload within a reply: a ```json fence, a
// plain fence holding an object, or the first balanced top-level {...} span.
func extractJSONSpan(reply string) (string, bool) {
	if span, ok := fencedSpan(reply, "```json"); ok {
		return span, true
	}
	if span, ok := fencedSpan(reply, "```"); ok {
		trimmed := strings.TrimSpace(span)
		if strings.HasPrefix(trimmed, "{") {
			return trimmed, true
		}
	}
	return braceSpan(reply)
}

// fencedSpan returns the content of the first code fence opened by marker.
func fencedSpan(reply, marker string) (string, bool) {
	start := strings.Index(reply, marker)
	if start < 0 {
		return "", false
	}
	rest := reply[start+len(marker):]

	// Fence content starts after the opening line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// braceSpan returns the first balanced top-level object span, tracking
// string literals so braces inside values do not break the balance.
func braceSpan(reply string) (string, bool) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		ch := reply[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return reply[start : i+1], true
				}
			}
		}
	}
	return "", false
}
