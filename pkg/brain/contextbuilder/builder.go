package contextbuilder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

// How far back turn-level media extraction looks.
const recentTurnWindow = 10

const pageAnalysisTimeout = 20 * time.Second

// SceneReader lists a project's scenes, ordered, with full content.
type SceneReader interface {
	ListScenes(ctx context.Context, projectID uuid.UUID) ([]brain.SceneSummary, error)
}

// AssetReader loads the persistent media library scoped to project and user.
type AssetReader interface {
	ListAssets(ctx context.Context, projectID, userID uuid.UUID) (brain.MediaLibrary, error)
}

// PageAnalyzer fetches and summarizes an external page. Optional collaborator;
// nil disables page analysis entirely.
type PageAnalyzer interface {
	Analyze(ctx context.Context, url string) (*brain.PageAnalysis, error)
}

// AnalysisSink receives completed page analyses for persistence. The call must
// not block; implementations dispatch to a background worker.
type AnalysisSink interface {
	PersistAnalysis(analysis *brain.PageAnalysis)
}

// Builder assembles the read-only ContextPacket for one decision. It never
// fails: any collaborator error degrades that slice of the packet to its
// zero value so intent analysis stays usable with partial context.
type Builder struct {
	scenes   SceneReader
	assets   AssetReader
	analyzer PageAnalyzer
	sink     AnalysisSink
	logger   *log.Logger
}

func NewBuilder(scenes SceneReader, assets AssetReader, analyzer PageAnalyzer, sink AnalysisSink, logger *log.Logger) *Builder {
	return &Builder{
		scenes:   scenes,
		assets:   assets,
		analyzer: analyzer,
		sink:     sink,
		logger:   logger,
	}
}

// Build gathers everything needed to disambiguate the request. The three
// sub-fetches are independent and run concurrently; intent analysis only
// starts after all of them settle.
func (b *Builder) Build(ctx context.Context, req *brain.Request) *brain.ContextPacket {
	packet := &brain.ContextPacket{
		ConversationSummary: summarizeConversation(req.History),
		RecentTurns:         lastTurns(req.History, recentTurnWindow),
	}
	packet.TurnImages, packet.TurnVideos = extractTurnMedia(packet.RecentTurns)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		scenes, err := b.scenes.ListScenes(ctx, req.ProjectID)
		if err != nil {
			b.logger.Printf("[CONTEXT] Scene history unavailable: %v", err)
			return
		}
		packet.Scenes = scenes
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		library, err := b.assets.ListAssets(ctx, req.ProjectID, req.UserID)
		if err != nil {
			b.logger.Printf("[CONTEXT] Media library unavailable: %v", err)
			return
		}
		packet.Library = library
	}()

	if url := brain.DetectPageURL(req.Prompt); url != "" && b.analyzer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			packet.PageAnalysis = b.analyzePage(ctx, url)
		}()
	}

	wg.Wait()
	return packet
}

// analyzePage runs the best-effort external analysis with its own deadline and
// hands the result to the sink for fire-and-forget persistence.
func (b *Builder) analyzePage(ctx context.Context, url string) *brain.PageAnalysis {
	ctx, cancel := context.WithTimeout(ctx, pageAnalysisTimeout)
	defer cancel()

	analysis, err := b.analyzer.Analyze(ctx, url)
	if err != nil {
		b.logger.Printf("[CONTEXT] Page analysis failed for %s: %v", url, err)
		return nil
	}

	if b.sink != nil {
		b.sink.PersistAnalysis(analysis)
	}
	return analysis
}

// summarizeConversation produces a short deterministic label of the recent
// exchange. No LLM call; this runs on every request.
func summarizeConversation(history []llm.Message) string {
	if len(history) == 0 {
		return "This is the beginning of the conversation."
	}

	userTurns := 0
	var lastUser string
	for _, msg := range history {
		if msg.Role == "user" {
			userTurns++
			lastUser = msg.Content
		}
	}

	if userTurns == 0 {
		return "The user has not said anything yet."
	}
	return fmt.Sprintf("The user has made %d requests so far; the last one was: %q",
		userTurns, truncate(lastUser, 120))
}

func lastTurns(history []llm.Message, n int) []llm.Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// extractTurnMedia pulls image/video URLs out of the recent turns, tagged with
// the turn position so ordinal references stay resolvable.
func extractTurnMedia(turns []llm.Message) (images []brain.TurnMedia, videos []brain.TurnMedia) {
	for i, turn := range turns {
		for _, url := range findURLs(turn.Content) {
			switch classifyMediaURL(url) {
			case "image":
				images = append(images, brain.TurnMedia{URL: url, TurnIndex: i})
			case "video":
				videos = append(videos, brain.TurnMedia{URL: url, TurnIndex: i})
			}
		}
	}
	return images, videos
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}
var videoExtensions = []string{".mp4", ".mov", ".webm", ".mkv"}

func classifyMediaURL(url string) string {
	lower := strings.ToLower(url)
	if idx := strings.IndexAny(lower, "?#"); idx != -1 {
		lower = lower[:idx]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return "image"
		}
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return "video"
		}
	}
	if brain.IsVideoHostURL(url) {
		return "video"
	}
	return ""
}

func findURLs(text string) []string {
	var urls []string
	for _, field := range strings.Fields(text) {
		field = strings.Trim(field, "()[]<>\"'.,;")
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			urls = append(urls, field)
		}
	}
	return urls
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
