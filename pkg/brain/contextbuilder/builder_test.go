package contextbuilder

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

type stubSceneReader struct {
	scenes []brain.SceneSummary
	err    error
}

func (s *stubSceneReader) ListScenes(ctx context.Context, projectID uuid.UUID) ([]brain.SceneSummary, error) {
	return s.scenes, s.err
}

type stubAssetReader struct {
	library brain.MediaLibrary
	err     error
}

func (s *stubAssetReader) ListAssets(ctx context.Context, projectID, userID uuid.UUID) (brain.MediaLibrary, error) {
	return s.library, s.err
}

type stubPageAnalyzer struct {
	analysis *brain.PageAnalysis
	err      error
}

func (s *stubPageAnalyzer) Analyze(ctx context.Context, url string) (*brain.PageAnalysis, error) {
	return s.analysis, s.err
}

type recordingSink struct {
	mu       sync.Mutex
	received []*brain.PageAnalysis
}

func (r *recordingSink) PersistAnalysis(analysis *brain.PageAnalysis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, analysis)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBuildGathersAllSlices(t *testing.T) {
	scenes := []brain.SceneSummary{{ID: uuid.New(), Name: "intro", Ordinal: 0}}
	library := brain.MediaLibrary{
		Project: []brain.LibraryAsset{{ID: uuid.New(), URL: "https://cdn.example.com/a.png", Scope: brain.ScopeProject}},
	}
	analysis := &brain.PageAnalysis{URL: "https://example.com/pricing", Title: "Pricing"}
	sink := &recordingSink{}

	builder := NewBuilder(
		&stubSceneReader{scenes: scenes},
		&stubAssetReader{library: library},
		&stubPageAnalyzer{analysis: analysis},
		sink,
		discardLogger(),
	)

	packet := builder.Build(context.Background(), &brain.Request{
		Prompt:    "make a video about https://example.com/pricing",
		ProjectID: uuid.New(),
		UserID:    uuid.New(),
	})

	if len(packet.Scenes) != 1 || packet.Scenes[0].Name != "intro" {
		t.Errorf("Scenes = %+v, want the stubbed scene", packet.Scenes)
	}
	if len(packet.Library.Project) != 1 {
		t.Errorf("Library.Project has %d assets, want 1", len(packet.Library.Project))
	}
	if packet.PageAnalysis == nil || packet.PageAnalysis.Title != "Pricing" {
		t.Errorf("PageAnalysis = %+v, want the stubbed analysis", packet.PageAnalysis)
	}
	if len(sink.received) != 1 {
		t.Errorf("sink received %d analyses, want 1", len(sink.received))
	}
}

func TestBuildDegradesOnFailingReaders(t *testing.T) {
	builder := NewBuilder(
		&stubSceneReader{err: errors.New("db down")},
		&stubAssetReader{err: errors.New("db down")},
		&stubPageAnalyzer{err: errors.New("fetch failed")},
		&recordingSink{},
		discardLogger(),
	)

	packet := builder.Build(context.Background(), &brain.Request{
		Prompt: "summarize https://example.com/docs please",
	})

	if packet == nil {
		t.Fatal("Build returned nil, want a degraded packet")
	}
	if packet.Scenes != nil {
		t.Errorf("Scenes = %+v, want nil on reader failure", packet.Scenes)
	}
	if !packet.Library.IsEmpty() {
		t.Errorf("Library = %+v, want empty on reader failure", packet.Library)
	}
	if packet.PageAnalysis != nil {
		t.Errorf("PageAnalysis = %+v, want nil on analyzer failure", packet.PageAnalysis)
	}
	if packet.ConversationSummary == "" {
		t.Error("ConversationSummary is empty, want the first-turn summary")
	}
}

func TestBuildSkipsPageAnalysisWithoutURL(t *testing.T) {
	sink := &recordingSink{}
	builder := NewBuilder(
		&stubSceneReader{},
		&stubAssetReader{},
		&stubPageAnalyzer{analysis: &brain.PageAnalysis{Title: "never"}},
		sink,
		discardLogger(),
	)

	packet := builder.Build(context.Background(), &brain.Request{Prompt: "make an intro scene"})

	if packet.PageAnalysis != nil {
		t.Errorf("PageAnalysis = %+v, want nil when the prompt has no URL", packet.PageAnalysis)
	}
	if len(sink.received) != 0 {
		t.Errorf("sink received %d analyses, want 0", len(sink.received))
	}
}

func TestBuildNilAnalyzerDisablesPageAnalysis(t *testing.T) {
	builder := NewBuilder(&stubSceneReader{}, &stubAssetReader{}, nil, nil, discardLogger())

	packet := builder.Build(context.Background(), &brain.Request{
		Prompt: "look at https://example.com/about",
	})

	if packet.PageAnalysis != nil {
		t.Errorf("PageAnalysis = %+v, want nil with no analyzer wired", packet.PageAnalysis)
	}
}

func TestExtractTurnMedia(t *testing.T) {
	turns := []llm.Message{
		{Role: "user", Content: "here is the logo https://cdn.example.com/logo.png and a clip https://cdn.example.com/demo.mp4"},
		{Role: "assistant", Content: "done"},
		{Role: "user", Content: "also this https://www.youtube.com/watch?v=abc123 and the doc https://example.com/readme"},
	}

	images, videos := extractTurnMedia(turns)

	if len(images) != 1 || images[0].URL != "https://cdn.example.com/logo.png" || images[0].TurnIndex != 0 {
		t.Errorf("images = %+v, want the logo at turn 0", images)
	}
	if len(videos) != 2 {
		t.Fatalf("videos = %+v, want the direct clip and the hosted link", videos)
	}
	if videos[1].TurnIndex != 2 {
		t.Errorf("second video TurnIndex = %d, want 2", videos[1].TurnIndex)
	}
}

func TestClassifyMediaURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/a.PNG", "image"},
		{"https://cdn.example.com/a.jpg?w=300", "image"},
		{"https://cdn.example.com/a.mp4", "video"},
		{"https://youtu.be/abc", "video"},
		{"https://example.com/page", ""},
	}
	for _, tt := range tests {
		if got := classifyMediaURL(tt.url); got != tt.want {
			t.Errorf("classifyMediaURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSummarizeConversation(t *testing.T) {
	if got := summarizeConversation(nil); got != "This is the beginning of the conversation." {
		t.Errorf("empty history summary = %q", got)
	}

	history := []llm.Message{
		{Role: "user", Content: "make an intro"},
		{Role: "assistant", Content: "done"},
		{Role: "user", Content: "now add a chart"},
	}
	got := summarizeConversation(history)
	if !strings.Contains(got, "2 requests") || !strings.Contains(got, "now add a chart") {
		t.Errorf("summary = %q, want turn count and last request", got)
	}
}
