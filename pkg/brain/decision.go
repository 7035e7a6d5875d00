package brain

import (
	"github.com/google/uuid"
)

// Tool names form a fixed catalogue. The analyzer never invents new ones;
// anything unrecognized falls back to ToolCreate.
const (
	ToolCreate        = "create"
	ToolEdit          = "edit"
	ToolDelete        = "delete"
	ToolSourceToVideo = "source_to_video" // Feature-gated external-source pipeline
)

// KnownTool reports whether name is part of the catalogue.
func KnownTool(name string) bool {
	switch name {
	case ToolCreate, ToolEdit, ToolDelete, ToolSourceToVideo:
		return true
	}
	return false
}

// ImageAction says what a generation tool should do with an image.
type ImageAction string

const (
	ActionEmbed    ImageAction = "embed"    // Place the image as-is
	ActionRecreate ImageAction = "recreate" // Rebuild the content in the scene's style
)

// KnownImageAction validates an action value from untrusted model output.
func KnownImageAction(a ImageAction) bool {
	return a == ActionEmbed || a == ActionRecreate
}

// Decision is the validated, fully-defaulted outcome of intent analysis.
// Exactly one of: a tool, a clarification, or a workflow.
type Decision struct {
	Tool               string
	NeedsClarification bool
	Question           string
	Workflow           []WorkflowStep

	TargetSceneID      *uuid.UUID
	ReferencedSceneIDs []uuid.UUID
	DurationFrames     int // 0 = not specified
	SourceURL          string

	Reasoning   string
	UserMessage string

	MediaPlan   *MediaPlan
	ImageAction ImageAction // Aggregate action; empty = model left it unset
}

// IsWorkflow reports whether the decision is a multi-step plan.
func (d *Decision) IsWorkflow() bool {
	return len(d.Workflow) > 0
}

// WorkflowStep is one ordered tool invocation inside a workflow decision.
type WorkflowStep struct {
	Tool          string
	Context       string
	TargetSceneID *uuid.UUID
	DependsOnPrev bool // Step consumes the previous step's target
}

// MediaPlan is the model's proposal for how media should be used. References
// are asset identifiers or raw URLs; never assumed valid until resolved.
type MediaPlan struct {
	ImageRefs   []string
	VideoRefs   []string
	Directives  []MediaDirective
	Mapping     map[string]string // Explicit ref -> placement mapping
	Unsatisfied []string          // References the model could not satisfy
	Reasoning   string
}

// IsEmpty is true when the plan carries nothing actionable at all.
func (p *MediaPlan) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.ImageRefs) == 0 && len(p.VideoRefs) == 0 &&
		len(p.Directives) == 0 && len(p.Mapping) == 0
}

// HasOrderedRefs is true when the plan names at least one image or video.
func (p *MediaPlan) HasOrderedRefs() bool {
	return p != nil && (len(p.ImageRefs) > 0 || len(p.VideoRefs) > 0)
}

// HasDirectives is true when the plan carries per-reference directives or an
// explicit mapping without necessarily naming ordered refs.
func (p *MediaPlan) HasDirectives() bool {
	return p != nil && (len(p.Directives) > 0 || len(p.Mapping) > 0)
}

// MediaDirective is a per-reference instruction inside a MediaPlan.
type MediaDirective struct {
	Ref       string
	Action    ImageAction
	Placement string
}

// ResolvedMediaPlan is the resolution service's output: concrete, scope-safe
// URLs plus a trace explaining every inclusion/exclusion decision.
type ResolvedMediaPlan struct {
	ImageURLs   []string
	VideoURLs   []string
	Directives  []ResolvedDirective
	ImageAction ImageAction

	Suppressed     bool
	SuppressReason string

	Trace ResolutionTrace
}

// ResolvedDirective is a directive whose reference resolved to a usable URL.
type ResolvedDirective struct {
	URL       string
	Action    ImageAction
	Placement string
}

// ResolutionTrace records candidate mappings and skipped references for
// observability. Control flow never depends on it.
type ResolutionTrace struct {
	Candidates map[string]string // ref -> resolved URL (pre scope filtering)
	Skipped    []SkippedRef
}

// SkippedRef is a reference excluded from the final plan, with the reason.
type SkippedRef struct {
	Ref    string
	URL    string
	Reason string
}

// Outcome is what the orchestrator hands to the external tool executor.
type Outcome struct {
	Decision        *Decision
	ResolvedMedia   *ResolvedMediaPlan
	OriginalPrompt  string
	EffectivePrompt string // Prompt after deterministic rewrites

	Failed      bool
	UserMessage string // Always safe to show; never an internal error
}
