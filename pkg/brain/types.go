package brain

import (
	"time"

	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

// ProgressFunc receives coarse-grained stage notifications ("building_context",
// "choosing_approach", "done"). Purely observational; nil is fine.
type ProgressFunc func(stage string)

// Progress stage names emitted by the orchestrator.
const (
	StageBuildingContext  = "building_context"
	StageChoosingApproach = "choosing_approach"
	StageResolvingMedia   = "resolving_media"
	StageDone             = "done"
)

// Request is one user turn. Ephemeral; lives for one orchestration call.
type Request struct {
	Prompt    string
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Context   UserContext
	History   []llm.Message
	Progress  ProgressFunc
}

// UserContext carries the loosely-typed per-turn fields the client attaches:
// literal media uploads, the selected scene, feature toggles.
type UserContext struct {
	AttachedImageURLs []string
	AttachedVideoURLs []string
	AttachedSceneID   *uuid.UUID // Scene explicitly attached as edit target
	SelectedSceneID   *uuid.UUID // Scene currently selected in the editor

	SourceToVideoEnabled   bool // Gate for the external-source pipeline tool
	ComponentLookupEnabled bool // Opt-in named component resolution
}

// AttachmentCount reports how many literal attachments the request carries.
func (u UserContext) AttachmentCount() int {
	return len(u.AttachedImageURLs) + len(u.AttachedVideoURLs)
}

// HasAttachments is true when the user supplied any literal media this turn.
func (u UserContext) HasAttachments() bool {
	return u.AttachmentCount() > 0
}

// ContextPacket is the assembled, read-only snapshot for one decision.
// Built fresh per request; never mutated after construction.
type ContextPacket struct {
	Scenes              []SceneSummary
	ConversationSummary string
	RecentTurns         []llm.Message
	TurnImages          []TurnMedia
	TurnVideos          []TurnMedia
	PageAnalysis        *PageAnalysis
	Library             MediaLibrary
}

// SceneSummary is one existing artifact with full content so the intent
// analyzer can reason about cross-scene edits, not just names.
type SceneSummary struct {
	ID      uuid.UUID
	Name    string
	Ordinal int
	Content string
}

// TurnMedia is an image/video reference extracted from a recent conversation
// turn, tagged with its position so ordinal references ("the second image")
// stay resolvable.
type TurnMedia struct {
	URL       string
	TurnIndex int
}

// PageAnalysis is the result of a best-effort external page analysis.
type PageAnalysis struct {
	URL            string
	Title          string
	Description    string
	Headings       []string
	ScreenshotURLs []string
	FetchedAt      time.Time
}

// AssetScope describes where a persistent library asset originates.
type AssetScope string

const (
	ScopeProject  AssetScope = "project"  // Linked to the project, directly usable
	ScopePersonal AssetScope = "personal" // User library, needs explicit linking
)

// LibraryAsset is one entry of the persistent media library snapshot.
type LibraryAsset struct {
	ID      uuid.UUID
	URL     string
	Scope   AssetScope
	Linked  bool // Personal assets only become usable once linked
	Name    string
	Tags    []string
	Ordinal int
}

// Usable reports whether scope rules permit direct use of this asset.
// Path inspection must never be used here; only the explicit scope/linkage
// flags govern eligibility.
func (a LibraryAsset) Usable() bool {
	return a.Scope == ScopeProject || a.Linked
}

// MediaLibrary is the per-request snapshot, partitioned by scope.
type MediaLibrary struct {
	Project  []LibraryAsset
	Personal []LibraryAsset
}

// All returns project and personal entries in one slice, project first.
func (m MediaLibrary) All() []LibraryAsset {
	out := make([]LibraryAsset, 0, len(m.Project)+len(m.Personal))
	out = append(out, m.Project...)
	out = append(out, m.Personal...)
	return out
}

// IsEmpty is true when the library holds no entries at all.
func (m MediaLibrary) IsEmpty() bool {
	return len(m.Project) == 0 && len(m.Personal) == 0
}

// UI-content tags used by the action heuristics. Assets carrying one of these
// default to "recreate" rather than "embed".
var uiContentTags = map[string]bool{
	"ui":         true,
	"interface":  true,
	"screenshot": true,
	"dashboard":  true,
	"webpage":    true,
	"app":        true,
}

// HasUITag reports whether any tag marks the asset as UI/screenshot content
// as opposed to a plain photo or logo.
func HasUITag(tags []string) bool {
	for _, t := range tags {
		if uiContentTags[t] {
			return true
		}
	}
	return false
}
