package mediaplan

import (
	"log"
	"strings"

	"ai-videobrain-be/pkg/brain"
)

// Resolver turns a model-proposed MediaPlan into concrete, scope-safe URL
// lists. Deterministic and synchronous; pure aside from logging.
type Resolver struct {
	logger *log.Logger
}

func NewResolver(logger *log.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// indexEntry keeps the asset metadata needed for scope and heuristic checks.
type indexEntry struct {
	asset brain.LibraryAsset
}

// Resolve maps the plan's references through the media-library snapshot,
// merges literal attachments, and applies the suppression and scope-safety
// rules. literalImages/literalVideos are the URLs the user attached this turn;
// they are always eligible regardless of scope since the user supplied them
// directly.
func (r *Resolver) Resolve(
	decision *brain.Decision,
	packet *brain.ContextPacket,
	prompt string,
	literalImages []string,
	literalVideos []string,
) *brain.ResolvedMediaPlan {

	resolved := &brain.ResolvedMediaPlan{
		Trace: brain.ResolutionTrace{Candidates: make(map[string]string)},
	}

	plan := decision.MediaPlan
	if plan == nil {
		plan = &brain.MediaPlan{}
	}

	// 1. Identifier -> asset index over the full snapshot, project and
	// personal entries alike. Scope filtering happens later; the index is
	// for lookup only.
	index := buildAssetIndex(packet)

	// 2+6. Map ordered references and apply scope safety in one pass.
	images, skippedImages := r.mapRefs(plan.ImageRefs, index, resolved.Trace.Candidates)
	videos, skippedVideos := r.mapRefs(plan.VideoRefs, index, resolved.Trace.Candidates)
	resolved.Trace.Skipped = append(resolved.Trace.Skipped, skippedImages...)
	resolved.Trace.Skipped = append(resolved.Trace.Skipped, skippedVideos...)

	// 3. Map per-reference directives; drop unresolvable refs and
	// unrecognized action values.
	resolved.Directives = r.mapDirectives(plan, index)

	// 4. Merge: attachments first, then plan URLs, deduplicated.
	resolved.ImageURLs = mergeURLs(literalImages, urlsOf(images))
	resolved.VideoURLs = mergeURLs(literalVideos, urlsOf(videos))

	// 5. Suppression: a bare creation request should not silently inherit
	// stale media.
	if r.shouldSuppress(decision, prompt, len(literalImages)+len(literalVideos)) {
		resolved.Suppressed = true
		resolved.SuppressReason = "no media intent in a non-edit request without attachments"
		resolved.ImageURLs = nil
		resolved.VideoURLs = nil
		resolved.Directives = nil
		r.logger.Printf("[RESOLVE] Plan suppressed: %s", resolved.SuppressReason)
		return resolved
	}

	// 7. Action heuristic: UI-tagged content defaults to recreate on edits.
	resolved.ImageAction = r.aggregateAction(decision, images)

	r.logger.Printf("[RESOLVE] %d images, %d videos, %d directives, %d skipped",
		len(resolved.ImageURLs), len(resolved.VideoURLs), len(resolved.Directives), len(resolved.Trace.Skipped))

	return resolved
}

// buildAssetIndex maps both identifiers and URLs to their library entry.
func buildAssetIndex(packet *brain.ContextPacket) map[string]indexEntry {
	index := make(map[string]indexEntry)
	if packet == nil {
		return index
	}
	for _, asset := range packet.Library.All() {
		index[asset.ID.String()] = indexEntry{asset: asset}
		if asset.URL != "" {
			index[asset.URL] = indexEntry{asset: asset}
		}
	}
	return index
}

// mapRefs resolves references through the index. A reference that is itself
// already a URL and not a known identifier is accepted as a degenerate case.
// Unknown references are dropped silently; unlinked personal assets are
// recorded as skipped, never included.
func (r *Resolver) mapRefs(
	refs []string,
	index map[string]indexEntry,
	candidates map[string]string,
) ([]brain.LibraryAsset, []brain.SkippedRef) {

	resolved := make([]brain.LibraryAsset, 0, len(refs))
	var skipped []brain.SkippedRef

	for _, ref := range refs {
		entry, known := index[ref]
		if !known {
			if isRawURL(ref) {
				// Degenerate case: the model handed us a URL directly.
				candidates[ref] = ref
				resolved = append(resolved, brain.LibraryAsset{URL: ref, Scope: brain.ScopeProject})
				continue
			}
			r.logger.Printf("[RESOLVE] Dropping unknown reference: %s", ref)
			continue
		}

		candidates[ref] = entry.asset.URL

		if !entry.asset.Usable() {
			skipped = append(skipped, brain.SkippedRef{
				Ref:    ref,
				URL:    entry.asset.URL,
				Reason: "personal-library asset not linked to project",
			})
			continue
		}

		resolved = append(resolved, entry.asset)
	}

	return resolved, skipped
}

func (r *Resolver) mapDirectives(plan *brain.MediaPlan, index map[string]indexEntry) []brain.ResolvedDirective {
	out := make([]brain.ResolvedDirective, 0, len(plan.Directives))
	for _, d := range plan.Directives {
		if !brain.KnownImageAction(d.Action) {
			r.logger.Printf("[RESOLVE] Dropping directive with unknown action %q", d.Action)
			continue
		}

		url := ""
		if entry, known := index[d.Ref]; known {
			if !entry.asset.Usable() {
				continue
			}
			url = entry.asset.URL
		} else if isRawURL(d.Ref) {
			url = d.Ref
		} else {
			continue
		}

		placement := d.Placement
		if placement == "" && plan.Mapping != nil {
			placement = plan.Mapping[d.Ref]
		}

		out = append(out, brain.ResolvedDirective{
			URL:       url,
			Action:    d.Action,
			Placement: placement,
		})
	}
	return out
}

// shouldSuppress implements the bare-creation rule: non-edit tool, no
// media-intent vocabulary, no attachments.
func (r *Resolver) shouldSuppress(decision *brain.Decision, prompt string, attachments int) bool {
	if decision.Tool == brain.ToolEdit {
		return false
	}
	if attachments > 0 {
		return false
	}
	return !brain.HasMediaIntent(prompt)
}

// aggregateAction picks the plan-wide image action. UI-tagged resolved images
// win on edit decisions; otherwise whatever the model declared stands.
func (r *Resolver) aggregateAction(decision *brain.Decision, images []brain.LibraryAsset) brain.ImageAction {
	if decision.Tool == brain.ToolEdit {
		for _, asset := range images {
			if brain.HasUITag(asset.Tags) {
				return brain.ActionRecreate
			}
		}
	}
	if brain.KnownImageAction(decision.ImageAction) {
		return decision.ImageAction
	}
	return ""
}

func urlsOf(assets []brain.LibraryAsset) []string {
	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.URL)
	}
	return urls
}

// mergeURLs joins attachment URLs with plan URLs, attachments first, deduped.
func mergeURLs(attachments, planURLs []string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(attachments)+len(planURLs))
	for _, url := range attachments {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		merged = append(merged, url)
	}
	for _, url := range planURLs {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		merged = append(merged, url)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func isRawURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
