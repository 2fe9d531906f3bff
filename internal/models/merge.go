package models

// ConflictType classifies how two branches collide on a file.
type ConflictType string

const (
	ConflictTypeContent      ConflictType = "content"
	ConflictTypeRename       ConflictType = "rename"
	ConflictTypeDeleteModify ConflictType = "delete-modify"
	ConflictTypeSemantic     ConflictType = "semantic"
	ConflictTypeDependency   ConflictType = "dependency"
)

// ConflictSeverity is a four-level ordinal (simple < moderate < complex <
// critical) used to gate automatic merge resolution.
type ConflictSeverity string

const (
	SeveritySimple   ConflictSeverity = "simple"
	SeverityModerate ConflictSeverity = "moderate"
	SeverityComplex  ConflictSeverity = "complex"
	SeverityCritical ConflictSeverity = "critical"
)

// ResolutionStrategy names how a conflict was (or should be) resolved.
type ResolutionStrategy string

const (
	StrategyOurs   ResolutionStrategy = "ours"
	StrategyTheirs ResolutionStrategy = "theirs"
	StrategyMerge  ResolutionStrategy = "merge"
	StrategyManual ResolutionStrategy = "manual"
)

// MergeConflict describes one conflicting file as reported by the merger agent.
type MergeConflict struct {
	File                string           `json:"file"`
	Type                ConflictType     `json:"type"`
	Severity            ConflictSeverity `json:"severity"`
	Description         string           `json:"description"`
	OursSummary         string           `json:"ours_summary"`
	TheirsSummary       string           `json:"theirs_summary"`
	SuggestedResolution string           `json:"suggested_resolution,omitempty"`
	NeedsManualReview   bool             `json:"needs_manual_review"`
}

// MergeResolution is the merger agent's proposed resolution for one file.
type MergeResolution struct {
	File            string             `json:"file"`
	Strategy        ResolutionStrategy `json:"strategy"`
	ResolvedContent string             `json:"resolved_content,omitempty"`
	Explanation     string             `json:"explanation"`
}

// MergeOutput is the aggregate merge report parsed from a merger reply.
type MergeOutput struct {
	Success             bool              `json:"success"`
	Conflicts           []MergeConflict   `json:"conflicts"`
	Resolutions         []MergeResolution `json:"resolutions"`
	UnresolvedCount     int               `json:"unresolved_count"`
	Summary             string            `json:"summary"`
	RequiresHumanReview bool              `json:"requires_human_review"`
}
