package mediaplan

import (
	"ai-videobrain-be/pkg/brain"
)

// ShouldResolve is the cheap pre-check that keeps the common "just generate
// from text" path free of resolution cost and side effects. Pure function.
//
// Resolution is worth running only when:
//   - the plan names ordered image/video references, or
//   - the plan carries directives/mapping AND there is something safe to act
//     on (project-scoped media available, or literal attachments this turn).
//
// Directives that could only ever reference unlinked personal-library media
// (no project media, no attachments) are not actionable.
func ShouldResolve(decision *brain.Decision, packet *brain.ContextPacket, attachmentCount int) bool {
	if decision == nil {
		return false
	}
	plan := decision.MediaPlan
	if plan.IsEmpty() {
		return false
	}

	if plan.HasOrderedRefs() {
		return true
	}

	if plan.HasDirectives() {
		if attachmentCount > 0 {
			return true
		}
		if packet != nil && len(packet.Library.Project) > 0 {
			return true
		}
	}

	return false
}
