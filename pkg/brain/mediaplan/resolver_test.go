package mediaplan

import (
	"io"
	"log"
	"testing"

	"ai-videobrain-be/pkg/brain"

	"github.com/google/uuid"
)

func newTestResolver() *Resolver {
	return NewResolver(log.New(io.Discard, "", 0))
}

func libraryPacket(assets ...brain.LibraryAsset) *brain.ContextPacket {
	packet := &brain.ContextPacket{}
	for _, a := range assets {
		if a.Scope == brain.ScopeProject {
			packet.Library.Project = append(packet.Library.Project, a)
		} else {
			packet.Library.Personal = append(packet.Library.Personal, a)
		}
	}
	return packet
}

func TestResolveMapsIdentifiersToURLs(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/logo.png", Scope: brain.ScopeProject, Tags: []string{"logo"},
	})
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	resolved := newTestResolver().Resolve(decision, packet, "use the logo", nil, nil)

	if resolved.Suppressed {
		t.Fatalf("plan suppressed: %s", resolved.SuppressReason)
	}
	if len(resolved.ImageURLs) != 1 || resolved.ImageURLs[0] != "https://cdn.example.com/logo.png" {
		t.Errorf("ImageURLs = %v, want the logo URL", resolved.ImageURLs)
	}
	if resolved.Trace.Candidates[id.String()] != "https://cdn.example.com/logo.png" {
		t.Errorf("trace missing candidate mapping for %s", id)
	}
}

func TestResolveAcceptsRawURLReference(t *testing.T) {
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{"https://cdn.example.com/direct.png"}},
	}

	resolved := newTestResolver().Resolve(decision, &brain.ContextPacket{}, "use this image", nil, nil)

	if len(resolved.ImageURLs) != 1 || resolved.ImageURLs[0] != "https://cdn.example.com/direct.png" {
		t.Errorf("ImageURLs = %v, want the raw URL passed through", resolved.ImageURLs)
	}
}

func TestResolveDropsUnknownReferences(t *testing.T) {
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{"not-a-known-id"}},
	}

	resolved := newTestResolver().Resolve(decision, &brain.ContextPacket{}, "use the image", nil, nil)

	if len(resolved.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %v, want empty for unknown reference", resolved.ImageURLs)
	}
}

func TestResolveScopeSafety(t *testing.T) {
	// An unlinked personal asset must never reach the URL lists, regardless
	// of what its storage path looks like.
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID:     id,
		URL:    "https://cdn.example.com/projects/other-project/dashboard.png",
		Scope:  brain.ScopePersonal,
		Linked: false,
		Tags:   []string{"dashboard"},
	})
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	resolved := newTestResolver().Resolve(decision, packet, "animate this image", nil, nil)

	if len(resolved.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %v, want empty for unlinked personal asset", resolved.ImageURLs)
	}
	if len(resolved.Trace.Skipped) != 1 {
		t.Fatalf("Skipped = %v, want exactly one entry", resolved.Trace.Skipped)
	}
	if resolved.Trace.Skipped[0].URL != "https://cdn.example.com/projects/other-project/dashboard.png" {
		t.Errorf("skipped URL = %s, want the asset URL", resolved.Trace.Skipped[0].URL)
	}
}

func TestResolveLinkedPersonalAssetIsUsable(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/linked.png", Scope: brain.ScopePersonal, Linked: true,
	})
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	resolved := newTestResolver().Resolve(decision, packet, "use the image", nil, nil)

	if len(resolved.ImageURLs) != 1 {
		t.Errorf("ImageURLs = %v, want the linked personal asset", resolved.ImageURLs)
	}
}

func TestResolveMergesAttachmentsFirst(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/lib.png", Scope: brain.ScopeProject,
	})
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}
	attachments := []string{"https://uploads.example.com/mine.png", "https://cdn.example.com/lib.png"}

	resolved := newTestResolver().Resolve(decision, packet, "use these images", attachments, nil)

	want := []string{"https://uploads.example.com/mine.png", "https://cdn.example.com/lib.png"}
	if len(resolved.ImageURLs) != 2 {
		t.Fatalf("ImageURLs = %v, want %v", resolved.ImageURLs, want)
	}
	for i := range want {
		if resolved.ImageURLs[i] != want[i] {
			t.Errorf("ImageURLs[%d] = %s, want %s", i, resolved.ImageURLs[i], want[i])
		}
	}
}

func TestResolveSuppressesBareCreation(t *testing.T) {
	// Even a plan full of valid project assets is dropped when a creation
	// request shows no media intent and carries no attachments.
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/stale.png", Scope: brain.ScopeProject,
	})
	decision := &brain.Decision{
		Tool:      brain.ToolCreate,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	resolved := newTestResolver().Resolve(decision, packet, "create an intro", nil, nil)

	if !resolved.Suppressed {
		t.Fatal("Suppressed = false, want true for bare creation")
	}
	if len(resolved.ImageURLs) != 0 || len(resolved.VideoURLs) != 0 {
		t.Errorf("URLs = %v/%v, want empty after suppression", resolved.ImageURLs, resolved.VideoURLs)
	}
	if resolved.SuppressReason == "" {
		t.Error("SuppressReason is empty, want an explanation")
	}
}

func TestResolveDoesNotSuppressEdit(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/a.png", Scope: brain.ScopeProject,
	})
	decision := &brain.Decision{
		Tool:      brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	// No media vocabulary, no attachments, but edits keep their plan.
	resolved := newTestResolver().Resolve(decision, packet, "make it shorter", nil, nil)

	if resolved.Suppressed {
		t.Error("Suppressed = true, want false for an edit")
	}
}

func TestResolveUITagDefaultsToRecreate(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/dash.png", Scope: brain.ScopeProject, Tags: []string{"ui", "dashboard"},
	})
	decision := &brain.Decision{
		Tool:        brain.ToolEdit,
		ImageAction: brain.ActionEmbed, // Model said embed; UI tag wins on edit
		MediaPlan:   &brain.MediaPlan{ImageRefs: []string{id.String()}},
	}

	resolved := newTestResolver().Resolve(decision, packet, "use the dashboard image", nil, nil)

	if resolved.ImageAction != brain.ActionRecreate {
		t.Errorf("ImageAction = %q, want %q", resolved.ImageAction, brain.ActionRecreate)
	}
}

func TestResolveDirectives(t *testing.T) {
	id := uuid.New()
	packet := libraryPacket(brain.LibraryAsset{
		ID: id, URL: "https://cdn.example.com/logo.png", Scope: brain.ScopeProject,
	})
	decision := &brain.Decision{
		Tool: brain.ToolEdit,
		MediaPlan: &brain.MediaPlan{
			ImageRefs: []string{id.String()},
			Directives: []brain.MediaDirective{
				{Ref: id.String(), Action: brain.ActionEmbed, Placement: "corner"},
				{Ref: id.String(), Action: "sparkle"}, // unknown action dropped
				{Ref: "ghost-ref", Action: brain.ActionEmbed},
			},
		},
	}

	resolved := newTestResolver().Resolve(decision, packet, "embed the logo", nil, nil)

	if len(resolved.Directives) != 1 {
		t.Fatalf("Directives = %v, want exactly one surviving", resolved.Directives)
	}
	d := resolved.Directives[0]
	if d.URL != "https://cdn.example.com/logo.png" || d.Action != brain.ActionEmbed || d.Placement != "corner" {
		t.Errorf("Directive = %+v, want resolved embed at corner", d)
	}
}
