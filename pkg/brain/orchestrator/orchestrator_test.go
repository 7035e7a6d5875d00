package orchestrator

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/brain/contextbuilder"
	"ai-videobrain-be/pkg/brain/intent"
	"ai-videobrain-be/pkg/brain/mediaplan"
	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

type fakeProvider struct {
	answer string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.answer, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.answer, nil
}

type staticScenes struct{ scenes []brain.SceneSummary }

func (s *staticScenes) ListScenes(ctx context.Context, projectID uuid.UUID) ([]brain.SceneSummary, error) {
	return s.scenes, nil
}

type staticAssets struct{ library brain.MediaLibrary }

func (s *staticAssets) ListAssets(ctx context.Context, projectID, userID uuid.UUID) (brain.MediaLibrary, error) {
	return s.library, nil
}

type staticSources struct {
	desc string
	err  error
}

func (s *staticSources) AnalyzeRange(ctx context.Context, url string, startSec, endSec int) (string, error) {
	return s.desc, s.err
}

type staticComponents struct{ context string }

func (s *staticComponents) ResolveComponent(ctx context.Context, name string) (string, error) {
	return s.context, nil
}

// newTestOrchestrator wires the full pipeline around a canned model answer and
// an in-memory library.
func newTestOrchestrator(answer string, library brain.MediaLibrary, sources SourceAnalyzer, components ComponentResolver) *Orchestrator {
	logger := log.New(io.Discard, "", 0)
	builder := contextbuilder.NewBuilder(&staticScenes{}, &staticAssets{library: library}, nil, nil, logger)
	analyzer := intent.NewAnalyzer(&fakeProvider{answer: answer}, logger)
	resolver := mediaplan.NewResolver(logger)
	return New(builder, analyzer, resolver, sources, components, logger)
}

func TestProcessCreateWithDuration(t *testing.T) {
	orch := newTestOrchestrator(`{"tool": "create", "reasoning": "fresh scene"}`, brain.MediaLibrary{}, nil, nil)

	var stages []string
	outcome := orch.Process(context.Background(), &brain.Request{
		Prompt:   "make a 3 second clip of a cat",
		Progress: func(stage string) { stages = append(stages, stage) },
	})

	if outcome.Failed {
		t.Fatalf("Failed = true, message %q", outcome.UserMessage)
	}
	if outcome.Decision.Tool != brain.ToolCreate {
		t.Errorf("Tool = %q, want create", outcome.Decision.Tool)
	}
	if outcome.Decision.DurationFrames != 90 {
		t.Errorf("DurationFrames = %d, want 90", outcome.Decision.DurationFrames)
	}
	if outcome.ResolvedMedia != nil {
		t.Errorf("ResolvedMedia = %+v, want nil with no plan and no attachments", outcome.ResolvedMedia)
	}
	if outcome.UserMessage == "" {
		t.Error("UserMessage is empty, want a default status line")
	}

	want := []string{brain.StageBuildingContext, brain.StageChoosingApproach, brain.StageDone}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stages[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestProcessClarificationIsTerminalNotFailed(t *testing.T) {
	orch := newTestOrchestrator(`{"needs_clarification": true, "question": "which scene?"}`, brain.MediaLibrary{}, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{Prompt: "change it"})

	if outcome.Failed {
		t.Error("Failed = true, want false for a clarification")
	}
	if !outcome.Decision.NeedsClarification {
		t.Fatal("NeedsClarification = false, want true")
	}
	if outcome.UserMessage != "which scene?" {
		t.Errorf("UserMessage = %q, want the clarifying question", outcome.UserMessage)
	}
	if outcome.ResolvedMedia != nil {
		t.Errorf("ResolvedMedia = %+v, want nil for a clarification", outcome.ResolvedMedia)
	}
}

func TestProcessUnparseableAnswerFails(t *testing.T) {
	orch := newTestOrchestrator("sure, I'd go with an edit here", brain.MediaLibrary{}, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{Prompt: "do the thing"})

	if !outcome.Failed {
		t.Fatal("Failed = false, want true for an unparseable answer")
	}
	if outcome.UserMessage != "I couldn't understand your request, please rephrase." {
		t.Errorf("UserMessage = %q", outcome.UserMessage)
	}
}

func TestProcessAttachmentsWithoutPlan(t *testing.T) {
	// No media plan from the model: the gate stays closed and the literal
	// attachments pass through untouched.
	orch := newTestOrchestrator(`{"tool": "create"}`, brain.MediaLibrary{}, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{
		Prompt: "use this image for the hero shot",
		Context: brain.UserContext{
			AttachedImageURLs: []string{"https://uploads.example.com/hero.png"},
		},
	})

	if outcome.Failed {
		t.Fatalf("Failed = true, message %q", outcome.UserMessage)
	}
	if outcome.ResolvedMedia == nil {
		t.Fatal("ResolvedMedia = nil, want the attachment passthrough")
	}
	if len(outcome.ResolvedMedia.ImageURLs) != 1 || outcome.ResolvedMedia.ImageURLs[0] != "https://uploads.example.com/hero.png" {
		t.Errorf("ImageURLs = %v, want the attached image", outcome.ResolvedMedia.ImageURLs)
	}
	if len(outcome.ResolvedMedia.Trace.Candidates) != 0 || len(outcome.ResolvedMedia.Trace.Skipped) != 0 {
		t.Errorf("Trace = %+v, want empty when the resolver never ran", outcome.ResolvedMedia.Trace)
	}
}

func TestProcessLibraryReferenceResolved(t *testing.T) {
	assetID := uuid.New()
	library := brain.MediaLibrary{
		Project: []brain.LibraryAsset{{
			ID: assetID, URL: "https://cdn.example.com/chart.png",
			Scope: brain.ScopeProject, Name: "q3 chart",
		}},
	}
	answer := `{"tool": "edit", "media_plan": {"images": ["` + assetID.String() + `"], "reasoning": "chart requested"}}`
	orch := newTestOrchestrator(answer, library, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{
		Prompt: "put the q3 chart image into the scene",
	})

	if outcome.Failed {
		t.Fatalf("Failed = true, message %q", outcome.UserMessage)
	}
	if outcome.ResolvedMedia == nil {
		t.Fatal("ResolvedMedia = nil, want a resolved plan")
	}
	if len(outcome.ResolvedMedia.ImageURLs) != 1 || outcome.ResolvedMedia.ImageURLs[0] != "https://cdn.example.com/chart.png" {
		t.Errorf("ImageURLs = %v, want the library URL", outcome.ResolvedMedia.ImageURLs)
	}
	if outcome.ResolvedMedia.Trace.Candidates[assetID.String()] == "" {
		t.Error("Trace missing the identifier-to-URL mapping")
	}
}

func TestProcessUnlinkedPersonalAssetNeverResolves(t *testing.T) {
	assetID := uuid.New()
	library := brain.MediaLibrary{
		Personal: []brain.LibraryAsset{{
			ID: assetID, URL: "https://cdn.example.com/projects/this-project/logo.png",
			Scope: brain.ScopePersonal, Linked: false,
		}},
	}
	answer := `{"tool": "edit", "media_plan": {"images": ["` + assetID.String() + `"]}}`
	orch := newTestOrchestrator(answer, library, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{
		Prompt: "add my logo image to the scene",
	})

	if outcome.ResolvedMedia != nil && len(outcome.ResolvedMedia.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %v, want none for an unlinked personal asset", outcome.ResolvedMedia.ImageURLs)
	}
}

func TestProcessSourceRangeFoldedIntoPrompt(t *testing.T) {
	orch := newTestOrchestrator(`{"tool": "create"}`, brain.MediaLibrary{},
		&staticSources{desc: "a whale breaching in slow motion"}, nil)

	req := &brain.Request{
		Prompt: "recreate https://youtu.be/abc123 from 0:30 to 1:00 as an animation",
	}
	outcome := orch.Process(context.Background(), req)

	if outcome.OriginalPrompt != req.Prompt {
		t.Errorf("OriginalPrompt = %q, want the untouched input", outcome.OriginalPrompt)
	}
	if !strings.Contains(outcome.EffectivePrompt, "[Source https://youtu.be/abc123, 30-60s]: a whale breaching in slow motion") {
		t.Errorf("EffectivePrompt = %q, want the folded source description", outcome.EffectivePrompt)
	}
}

func TestProcessSourceAnalysisFailureLeavesPromptAlone(t *testing.T) {
	orch := newTestOrchestrator(`{"tool": "create"}`, brain.MediaLibrary{},
		&staticSources{err: errors.New("fetch failed")}, nil)

	req := &brain.Request{Prompt: "recreate https://youtu.be/abc123 from 0:30 to 1:00"}
	outcome := orch.Process(context.Background(), req)

	if outcome.EffectivePrompt != req.Prompt {
		t.Errorf("EffectivePrompt = %q, want unchanged on analysis failure", outcome.EffectivePrompt)
	}
}

func TestProcessComponentLookupIsOptIn(t *testing.T) {
	components := &staticComponents{context: "props: plan, price, cta"}

	// Toggle off: no rewrite even though a resolver is wired.
	orch := newTestOrchestrator(`{"tool": "create"}`, brain.MediaLibrary{}, nil, components)
	req := &brain.Request{Prompt: "use the Pricing Table component in the next scene"}
	outcome := orch.Process(context.Background(), req)
	if outcome.EffectivePrompt != req.Prompt {
		t.Errorf("EffectivePrompt = %q, want unchanged with lookup disabled", outcome.EffectivePrompt)
	}

	// Toggle on: component context folded in.
	req.Context.ComponentLookupEnabled = true
	outcome = orch.Process(context.Background(), req)
	if !strings.Contains(outcome.EffectivePrompt, "[Component Pricing Table]: props: plan, price, cta") {
		t.Errorf("EffectivePrompt = %q, want the folded component context", outcome.EffectivePrompt)
	}
}

func TestProcessRecoversFromPanic(t *testing.T) {
	orch := newTestOrchestrator(`{"tool": "create"}`, brain.MediaLibrary{}, nil, nil)

	outcome := orch.Process(context.Background(), &brain.Request{
		Prompt:   "make a scene",
		Progress: func(stage string) { panic("sink gone") },
	})

	if !outcome.Failed {
		t.Fatal("Failed = false, want true after a panic")
	}
	if outcome.UserMessage == "" {
		t.Error("UserMessage is empty, want the generic failure message")
	}
}
