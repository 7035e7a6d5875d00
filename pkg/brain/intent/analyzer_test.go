package intent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeProvider returns a canned answer so the validation ladder can be
// exercised without a model.
type fakeProvider struct {
	answer string
	err    error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.answer, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.answer, f.err
}

func newTestAnalyzer(answer string) *Analyzer {
	return NewAnalyzer(&fakeProvider{answer: answer}, log.New(io.Discard, "", 0))
}

func analyze(t *testing.T, analyzer *Analyzer, req *brain.Request, packet *brain.ContextPacket) *brain.Decision {
	t.Helper()
	decision, err := analyzer.Analyze(context.Background(), req, packet, req.Prompt)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	return decision
}

func TestAnalyzeUnparseableAnswerIsHardFailure(t *testing.T) {
	analyzer := newTestAnalyzer("I think you should probably edit the scene")
	req := &brain.Request{Prompt: "do something"}

	_, err := analyzer.Analyze(context.Background(), req, &brain.ContextPacket{}, req.Prompt)
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("err = %v, want ErrUnparseable", err)
	}
}

func TestAnalyzeParsesFencedAnswer(t *testing.T) {
	analyzer := newTestAnalyzer("```json\n{\"tool\": \"edit\", \"reasoning\": \"r\"}\n```")
	decision := analyze(t, analyzer, &brain.Request{Prompt: "edit it"}, &brain.ContextPacket{})

	if decision.Tool != brain.ToolEdit {
		t.Errorf("Tool = %q, want edit despite the code fence", decision.Tool)
	}
}

func TestAnalyzeWorkflowAcceptedAsIs(t *testing.T) {
	analyzer := newTestAnalyzer(`{
		"workflow": [
			{"tool": "create", "context": "intro scene"},
			{"tool": "edit", "context": "match the style", "depends_on_prev": true}
		]
	}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "intro then restyle"}, &brain.ContextPacket{})

	if !decision.IsWorkflow() {
		t.Fatal("IsWorkflow = false, want true")
	}
	if len(decision.Workflow) != 2 {
		t.Fatalf("Workflow steps = %d, want 2", len(decision.Workflow))
	}
	if !decision.Workflow[1].DependsOnPrev {
		t.Error("second step should depend on the first")
	}
}

func TestAnalyzeAttachmentOverridesClarification(t *testing.T) {
	analyzer := newTestAnalyzer(`{"needs_clarification": true, "question": "which image?"}`)
	req := &brain.Request{
		Prompt: "use this image as the background",
		Context: brain.UserContext{
			AttachedImageURLs: []string{"https://uploads.example.com/bg.png"},
		},
	}

	decision := analyze(t, analyzer, req, &brain.ContextPacket{})

	if decision.NeedsClarification {
		t.Error("NeedsClarification = true, want false when attachments are present")
	}
	if decision.Tool != brain.ToolCreate {
		t.Errorf("Tool = %q, want create (no target scene attached)", decision.Tool)
	}
	if decision.Reasoning == "" {
		t.Error("Reasoning is empty, want a synthesized rationale")
	}
}

func TestAnalyzeAttachedSceneForcesEdit(t *testing.T) {
	sceneID := uuid.New()
	analyzer := newTestAnalyzer(`{"needs_clarification": true, "question": "what do you mean?"}`)
	req := &brain.Request{
		Prompt:  "fix this",
		Context: brain.UserContext{AttachedSceneID: &sceneID},
	}

	decision := analyze(t, analyzer, req, &brain.ContextPacket{})

	if decision.Tool != brain.ToolEdit {
		t.Errorf("Tool = %q, want edit when a target scene is attached", decision.Tool)
	}
	if decision.TargetSceneID == nil || *decision.TargetSceneID != sceneID {
		t.Errorf("TargetSceneID = %v, want %s", decision.TargetSceneID, sceneID)
	}
}

func TestAnalyzeHonorsClarificationWithoutAttachments(t *testing.T) {
	analyzer := newTestAnalyzer(`{"needs_clarification": true, "question": "which scene should I change?"}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "change it"}, &brain.ContextPacket{})

	if !decision.NeedsClarification {
		t.Fatal("NeedsClarification = false, want true")
	}
	if decision.Tool != "" {
		t.Errorf("Tool = %q, want empty alongside a clarification", decision.Tool)
	}
	if decision.Question != "which scene should I change?" {
		t.Errorf("Question = %q, want the model's question", decision.Question)
	}
}

func TestAnalyzeDisabledSourceToolFallsBack(t *testing.T) {
	analyzer := newTestAnalyzer(`{"tool": "source_to_video", "source_url": "https://example.com/talk"}`)
	req := &brain.Request{Prompt: "make a video from this page"} // toggle off

	decision := analyze(t, analyzer, req, &brain.ContextPacket{})

	if decision.Tool != brain.ToolCreate {
		t.Errorf("Tool = %q, want create when source_to_video is disabled", decision.Tool)
	}
	if decision.SourceURL != "" {
		t.Errorf("SourceURL = %q, want stripped", decision.SourceURL)
	}
}

func TestAnalyzeEnabledSourceToolAccepted(t *testing.T) {
	analyzer := newTestAnalyzer(`{"tool": "source_to_video", "source_url": "https://example.com/talk"}`)
	req := &brain.Request{
		Prompt:  "make a video from this page",
		Context: brain.UserContext{SourceToVideoEnabled: true},
	}

	decision := analyze(t, analyzer, req, &brain.ContextPacket{})

	if decision.Tool != brain.ToolSourceToVideo {
		t.Errorf("Tool = %q, want source_to_video when enabled", decision.Tool)
	}
	if decision.SourceURL != "https://example.com/talk" {
		t.Errorf("SourceURL = %q, want kept", decision.SourceURL)
	}
}

func TestAnalyzeDefaultsToCreate(t *testing.T) {
	// No tool, no clarification: the ladder must still yield a usable tool.
	analyzer := newTestAnalyzer(`{"reasoning": ""}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "hello"}, &brain.ContextPacket{})

	if decision.Tool != brain.ToolCreate {
		t.Errorf("Tool = %q, want create", decision.Tool)
	}
	if decision.Reasoning == "" {
		t.Error("Reasoning is empty, want a synthesized rationale")
	}
	if decision.NeedsClarification {
		t.Error("NeedsClarification = true, want false")
	}
}

func TestAnalyzeUnknownToolDefaultsToCreate(t *testing.T) {
	analyzer := newTestAnalyzer(`{"tool": "transmogrify"}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "transmogrify it"}, &brain.ContextPacket{})

	if decision.Tool != brain.ToolCreate {
		t.Errorf("Tool = %q, want create for an unknown tool name", decision.Tool)
	}
}

func TestAnalyzeUITagTieBreak(t *testing.T) {
	assetID := uuid.New()
	packet := &brain.ContextPacket{}
	packet.Library.Project = []brain.LibraryAsset{{
		ID: assetID, URL: "https://cdn.example.com/dash.png",
		Scope: brain.ScopeProject, Tags: []string{"screenshot"},
	}}

	analyzer := newTestAnalyzer(`{"tool": "edit", "media_plan": {"images": ["` + assetID.String() + `"]}}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "add the screenshot"}, packet)

	if decision.ImageAction != brain.ActionRecreate {
		t.Errorf("ImageAction = %q, want recreate for UI-tagged content", decision.ImageAction)
	}
}

func TestAnalyzeUITagTieBreakWithoutMediaPlan(t *testing.T) {
	packet := &brain.ContextPacket{}
	packet.Library.Project = []brain.LibraryAsset{{
		ID: uuid.New(), URL: "https://cdn.example.com/dash.png",
		Scope: brain.ScopeProject, Tags: []string{"ui"},
	}}

	// The model returned no media plan; the attached image alone must still
	// drive the tie-break.
	analyzer := newTestAnalyzer(`{"tool": "create"}`)
	req := &brain.Request{
		Prompt: "build a scene from this",
		Context: brain.UserContext{
			AttachedImageURLs: []string{"https://cdn.example.com/dash.png"},
		},
	}
	decision := analyze(t, analyzer, req, packet)

	if decision.ImageAction != brain.ActionRecreate {
		t.Errorf("ImageAction = %q, want recreate for a UI-tagged attachment", decision.ImageAction)
	}
}

func TestAnalyzeModelActionWinsWhenSet(t *testing.T) {
	assetID := uuid.New()
	packet := &brain.ContextPacket{}
	packet.Library.Project = []brain.LibraryAsset{{
		ID: assetID, URL: "https://cdn.example.com/dash.png",
		Scope: brain.ScopeProject, Tags: []string{"screenshot"},
	}}

	analyzer := newTestAnalyzer(`{"tool": "edit", "image_action": "embed", "media_plan": {"images": ["` + assetID.String() + `"]}}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "add the screenshot"}, packet)

	if decision.ImageAction != brain.ActionEmbed {
		t.Errorf("ImageAction = %q, want the model's explicit embed", decision.ImageAction)
	}
}

func TestAnalyzeExtractsDuration(t *testing.T) {
	analyzer := newTestAnalyzer(`{"tool": "create"}`)
	decision := analyze(t, analyzer, &brain.Request{Prompt: "make it 5 seconds"}, &brain.ContextPacket{})

	if decision.DurationFrames != 150 {
		t.Errorf("DurationFrames = %d, want 150", decision.DurationFrames)
	}
}
