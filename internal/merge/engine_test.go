package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okheath/crew/internal/models"
)

const fullReport = `{
	"success": true,
	"conflicts": [
		{
			"file": "internal/api/server.go",
			"type": "content",
			"severity": "simple",
			"description": "both sides touched the handler table",
			"ours_summary": "added /v2 route",
			"theirs_summary": "renamed handler",
			"needs_manual_review": false
		}
	],
	"resolutions": [
		{"file": "internal/api/server.go", "strategy": "merge", "explanation": "kept both changes"}
	],
	"unresolved_count": 0,
	"summary": "clean merge with one trivial conflict",
	"requires_human_review": false
}`

func TestParseOutput_FencedJSON(t *testing.T) {
	reply := "I resolved the conflicts.\n\n```json\n" + fullReport + "\n```\n\nAll done."

	out, ok := ParseOutput(reply)
	require.True(t, ok)

	assert.True(t, out.Success)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, "internal/api/server.go", out.Conflicts[0].File)
	assert.Equal(t, models.ConflictTypeContent, out.Conflicts[0].Type)
	assert.Equal(t, models.SeveritySimple, out.Conflicts[0].Severity)
	require.Len(t, out.Resolutions, 1)
	assert.Equal(t, models.StrategyMerge, out.Resolutions[0].Strategy)
	assert.Equal(t, "clean merge with one trivial conflict", out.Summary)
}

func TestParseOutput_PlainFence(t *testing.T) {
	reply := "```\n" + fullReport + "\n```"

	out, ok := ParseOutput(reply)
	require.True(t, ok)
	assert.True(t, out.Success)
}

func TestParseOutput_BareObject(t *testing.T) {
	reply := "Final report follows. " + fullReport + " That is everything."

	out, ok := ParseOutput(reply)
	require.True(t, ok)
	assert.True(t, out.Success)
	assert.Len(t, out.Conflicts, 1)
}

func TestParseOutput_BracesInsideStrings(t *testing.T) {
	reply := `{"success": false, "conflicts": [], "summary": "function body {なら } changed on both sides"}`

	out, ok := ParseOutput(reply)
	require.True(t, ok)
	assert.Contains(t, out.Summary, "changed on both sides")
}

func TestParseOutput_DefaultsMissingFields(t *testing.T) {
	reply := `{
		"success": false,
		"conflicts": [{"description": "something collided"}],
		"resolutions": [{}]
	}`

	out, ok := ParseOutput(reply)
	require.True(t, ok)

	c := out.Conflicts[0]
	assert.Equal(t, "unknown", c.File)
	assert.Equal(t, models.ConflictTypeContent, c.Type)
	assert.Equal(t, models.SeverityModerate, c.Severity)
	assert.False(t, c.NeedsManualReview)

	r := out.Resolutions[0]
	assert.Equal(t, "unknown", r.File)
	assert.Equal(t, models.StrategyManual, r.Strategy)
	assert.Equal(t, "No explanation", r.Explanation)

	assert.Equal(t, "No summary provided", out.Summary)
	assert.Equal(t, 0, out.UnresolvedCount)
	assert.False(t, out.RequiresHumanReview)
}

func TestParseOutput_Absence(t *testing.T) {
	t.Run("no JSON at all", func(t *testing.T) {
		out, ok := ParseOutput("I could not resolve the merge, sorry.")
		assert.False(t, ok)
		assert.Nil(t, out)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		out, ok := ParseOutput(`{"success": true, "conflicts": [`)
		assert.False(t, ok)
		assert.Nil(t, out)
	})

	t.Run("empty reply", func(t *testing.T) {
		out, ok := ParseOutput("")
		assert.False(t, ok)
		assert.Nil(t, out)
	})
}

func TestContainsOutput(t *testing.T) {
	assert.True(t, ContainsOutput(`{"success": true, "conflicts": []}`))
	assert.True(t, ContainsOutput("```json\n"+fullReport+"\n```"))
	assert.False(t, ContainsOutput(`{"success": true}`), "needs both keys")
	assert.False(t, ContainsOutput(`{"conflicts": []}`), "needs both keys")
	assert.False(t, ContainsOutput("no json here"))
}

func conflict(severity models.ConflictSeverity, ctype models.ConflictType, manual bool) models.MergeConflict {
	return models.MergeConflict{
		File:              fmt.Sprintf("file-%s-%s.go", severity, ctype),
		Type:              ctype,
		Severity:          severity,
		NeedsManualReview: manual,
	}
}

func TestCanAutoComplete(t *testing.T) {
	okConflicts := []models.MergeConflict{
		conflict(models.SeveritySimple, models.ConflictTypeContent, false),
		conflict(models.SeverityModerate, models.ConflictTypeRename, false),
		conflict(models.SeveritySimple, models.ConflictTypeDependency, false),
	}

	t.Run("empty list", func(t *testing.T) {
		assert.True(t, CanAutoComplete(nil))
	})

	t.Run("simple and moderate conflicts", func(t *testing.T) {
		assert.True(t, CanAutoComplete(okConflicts))
	})

	t.Run("fail-closed under one disqualifier", func(t *testing.T) {
		disqualifiers := []models.MergeConflict{
			conflict(models.SeverityCritical, models.ConflictTypeContent, false),
			conflict(models.SeverityComplex, models.ConflictTypeContent, false),
			conflict(models.SeveritySimple, models.ConflictTypeContent, true),
			conflict(models.SeveritySimple, models.ConflictTypeDeleteModify, false),
		}
		for _, bad := range disqualifiers {
			withBad := append(append([]models.MergeConflict{}, okConflicts...), bad)
			assert.False(t, CanAutoComplete(withBad), "%s/%s manual=%v", bad.Severity, bad.Type, bad.NeedsManualReview)
		}
	})
}

func TestFilesNeedingReview(t *testing.T) {
	conflicts := []models.MergeConflict{
		{File: "a.go", Severity: models.SeveritySimple},
		{File: "b.go", Severity: models.SeverityCritical},
		{File: "c.go", Severity: models.SeverityModerate, NeedsManualReview: true},
		{File: "b.go", Severity: models.SeverityComplex},
		{File: "d.go", Severity: models.SeverityModerate},
	}

	files := FilesNeedingReview(conflicts)
	assert.Equal(t, []string{"b.go", "c.go"}, files)
}

func TestGetConflictCounts(t *testing.T) {
	conflicts := []models.MergeConflict{
		conflict(models.SeveritySimple, models.ConflictTypeContent, false),
		conflict(models.SeveritySimple, models.ConflictTypeRename, false),
		conflict(models.SeverityCritical, models.ConflictTypeContent, false),
	}

	counts := GetConflictCounts(conflicts)
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.BySeverity[models.SeveritySimple])
	assert.Equal(t, 1, counts.BySeverity[models.SeverityCritical])
	assert.Equal(t, 2, counts.ByType[models.ConflictTypeContent])
	assert.Equal(t, 1, counts.ByType[models.ConflictTypeRename])
}

func TestSummarize_RoundTrip(t *testing.T) {
	out := &models.MergeOutput{
		Success: true,
		Conflicts: []models.MergeConflict{
			conflict(models.SeveritySimple, models.ConflictTypeContent, false),
			conflict(models.SeveritySimple, models.ConflictTypeRename, false),
			conflict(models.SeverityComplex, models.ConflictTypeSemantic, true),
		},
		UnresolvedCount:     1,
		Summary:             "one semantic clash needs a human",
		RequiresHumanReview: true,
	}

	text := Summarize(out)
	counts := GetConflictCounts(out.Conflicts)

	assert.Contains(t, text, "SUCCESS")
	assert.Contains(t, text, "3 total, 1 unresolved")
	assert.Contains(t, text, fmt.Sprintf("simple: %d", counts.BySeverity[models.SeveritySimple]))
	assert.Contains(t, text, fmt.Sprintf("complex: %d", counts.BySeverity[models.SeverityComplex]))
	for _, f := range FilesNeedingReview(out.Conflicts) {
		assert.Contains(t, text, f)
	}
	assert.Contains(t, text, "requires human review")
	assert.Contains(t, text, "one semantic clash needs a human")
}
