package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/brain/contextbuilder"
	"ai-videobrain-be/pkg/brain/intent"
	"ai-videobrain-be/pkg/brain/mediaplan"
	"ai-videobrain-be/pkg/brain/orchestrator"
	"ai-videobrain-be/pkg/llm"
	"ai-videobrain-be/pkg/llm/factory"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Interactive harness for the decision pipeline: type prompts, watch the
// stages and the outcome without a database or HTTP server. Set LLM_PROVIDER
// to talk to a real model; the default is a canned offline responder.

type cannedProvider struct{}

func (p *cannedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return `{"tool": "create", "reasoning": "canned offline decision", "user_message": "Working on a new scene for you."}`, nil
}

func (p *cannedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil)
}

type staticScenes struct{}

func (staticScenes) ListScenes(ctx context.Context, projectID uuid.UUID) ([]brain.SceneSummary, error) {
	return []brain.SceneSummary{
		{ID: uuid.New(), Name: "Intro", Ordinal: 0, Content: "Welcome slide with the product logo"},
		{ID: uuid.New(), Name: "Features", Ordinal: 1, Content: "Three feature cards with icons"},
	}, nil
}

type staticAssets struct{}

func (staticAssets) ListAssets(ctx context.Context, projectID, userID uuid.UUID) (brain.MediaLibrary, error) {
	return brain.MediaLibrary{
		Project: []brain.LibraryAsset{
			{ID: uuid.New(), URL: "https://cdn.example.com/logo.png", Scope: brain.ScopeProject, Name: "logo", Tags: []string{"logo"}},
			{ID: uuid.New(), URL: "https://cdn.example.com/dashboard.png", Scope: brain.ScopeProject, Name: "dashboard", Tags: []string{"ui", "screenshot"}},
		},
		Personal: []brain.LibraryAsset{
			{ID: uuid.New(), URL: "https://cdn.example.com/headshot.jpg", Scope: brain.ScopePersonal, Name: "headshot", Linked: false},
		},
	}, nil
}

func main() {
	color.Cyan("Brain decision pipeline debugger")
	color.Cyan("Type a prompt and press enter. Ctrl+D to exit.\n")

	logger := log.New(os.Stderr, "brain ", log.LstdFlags)

	var provider llm.Provider = &cannedProvider{}
	if providerType := os.Getenv("LLM_PROVIDER"); providerType != "" {
		p, err := factory.NewLLMProvider(
			providerType,
			os.Getenv("LLM_MODEL"),
			os.Getenv("OLLAMA_BASE_URL"),
			os.Getenv("OPENAI_API_KEY"),
			45*time.Second,
			2,
		)
		if err != nil {
			color.Red("Failed to initialize LLM provider: %v", err)
			os.Exit(1)
		}
		provider = p
		color.Yellow("Using live LLM provider: %s (%s)\n", providerType, os.Getenv("LLM_MODEL"))
	} else {
		color.Yellow("Using canned offline provider (set LLM_PROVIDER for a real model)\n")
	}

	builder := contextbuilder.NewBuilder(staticScenes{}, staticAssets{}, nil, nil, logger)
	analyzer := intent.NewAnalyzer(provider, logger)
	resolver := mediaplan.NewResolver(logger)
	orch := orchestrator.New(builder, analyzer, resolver, nil, nil, logger)

	projectID := uuid.New()
	userID := uuid.New()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			fmt.Print("> ")
			continue
		}

		req := &brain.Request{
			Prompt:    prompt,
			ProjectID: projectID,
			UserID:    userID,
			Progress: func(stage string) {
				color.Blue("  stage: %s", stage)
			},
		}

		outcome := orch.Process(context.Background(), req)

		if outcome.Failed {
			color.Red("FAILED: %s", outcome.UserMessage)
		} else if outcome.Decision != nil && outcome.Decision.NeedsClarification {
			color.Yellow("CLARIFY: %s", outcome.Decision.Question)
		} else {
			color.Green("OK: %s", outcome.UserMessage)
		}
		prettyPrint(outcome)

		fmt.Print("> ")
	}
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
