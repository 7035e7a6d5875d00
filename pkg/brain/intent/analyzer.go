package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/llm"

	"github.com/google/uuid"
)

// ErrUnparseable is surfaced when the model's answer is not valid structured
// data. This is the one hard failure of the analyzer; everything else degrades.
var ErrUnparseable = errors.New("model answer is not valid structured data")

const analyzeTimeout = 45 * time.Second

// Analyzer performs one LLM call and turns the untrusted structured answer
// into a fully-defaulted Decision via the fixed validation ladder.
type Analyzer struct {
	provider llm.Provider
	composer *PromptComposer
	logger   *log.Logger
}

func NewAnalyzer(provider llm.Provider, logger *log.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		composer: NewPromptComposer(),
		logger:   logger,
	}
}

// rawDecision mirrors the wire format. Every field is optional and adversarial
// until validated; this struct never leaves the package.
type rawDecision struct {
	Tool               string         `json:"tool"`
	NeedsClarification bool           `json:"needs_clarification"`
	Question           string         `json:"question"`
	Workflow           []rawStep      `json:"workflow"`
	TargetSceneID      string         `json:"target_scene_id"`
	ReferencedSceneIDs []string       `json:"referenced_scene_ids"`
	SourceURL          string         `json:"source_url"`
	ImageAction        string         `json:"image_action"`
	MediaPlan          *rawMediaPlan  `json:"media_plan"`
	Reasoning          string         `json:"reasoning"`
	UserMessage        string         `json:"user_message"`
}

type rawStep struct {
	Tool          string `json:"tool"`
	Context       string `json:"context"`
	TargetSceneID string `json:"target_scene_id"`
	DependsOnPrev bool   `json:"depends_on_prev"`
}

type rawMediaPlan struct {
	Images      []string          `json:"images"`
	Videos      []string          `json:"videos"`
	Directives  []rawDirective    `json:"directives"`
	Mapping     map[string]string `json:"mapping"`
	Unsatisfied []string          `json:"unsatisfied"`
	Reasoning   string            `json:"reasoning"`
}

type rawDirective struct {
	Ref       string `json:"ref"`
	Action    string `json:"action"`
	Placement string `json:"placement"`
}

// Analyze runs the model call and the validation ladder.
func (a *Analyzer) Analyze(ctx context.Context, req *brain.Request, packet *brain.ContextPacket, prompt string) (*brain.Decision, error) {
	instruction := a.composer.Compose(req, packet, prompt)

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	answer, err := a.provider.Generate(ctx, instruction,
		llm.WithTemperature(0.0),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return nil, fmt.Errorf("intent analysis call failed: %w", err)
	}

	raw, err := parseRawDecision(answer)
	if err != nil {
		a.logger.Printf("[INTENT] Unparseable answer: %v", err)
		return nil, err
	}

	decision := a.validate(raw, req, packet)

	// Duration is a deterministic extraction from the literal prompt text,
	// never taken from the model.
	decision.DurationFrames = brain.ExtractDurationFrames(req.Prompt)

	a.logger.Printf("[INTENT] tool=%s clarify=%v workflow=%d duration=%d",
		decision.Tool, decision.NeedsClarification, len(decision.Workflow), decision.DurationFrames)

	return decision, nil
}

// parseRawDecision extracts the JSON object from the answer, tolerating fenced
// code blocks and surrounding prose. Failure here is a hard error; guessing a
// decision from unparseable output is worse than asking the user to rephrase.
func parseRawDecision(answer string) (*rawDecision, error) {
	jsonContent := extractJSON(answer)
	if jsonContent == "" {
		return nil, ErrUnparseable
	}
	var raw rawDecision
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return &raw, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

// validate applies the deterministic fallback/override policy, in order.
// The raw answer is untrusted input; the returned Decision is fully defaulted.
func (a *Analyzer) validate(raw *rawDecision, req *brain.Request, packet *brain.ContextPacket) *brain.Decision {
	decision := &brain.Decision{
		Reasoning:   raw.Reasoning,
		UserMessage: raw.UserMessage,
	}

	// 2. A declared multi-step workflow is accepted as-is.
	if len(raw.Workflow) > 0 {
		for _, step := range raw.Workflow {
			decision.Workflow = append(decision.Workflow, brain.WorkflowStep{
				Tool:          step.Tool,
				Context:       step.Context,
				TargetSceneID: parseOptionalUUID(step.TargetSceneID),
				DependsOnPrev: step.DependsOnPrev,
			})
		}
		decision.MediaPlan = convertMediaPlan(raw.MediaPlan)
		return decision
	}

	// 3. Attachments override clarification: the user already disambiguated
	// by handing us concrete material.
	if raw.NeedsClarification {
		if req.Context.HasAttachments() || req.Context.AttachedSceneID != nil {
			if req.Context.AttachedSceneID != nil {
				decision.Tool = brain.ToolEdit
				decision.TargetSceneID = req.Context.AttachedSceneID
				decision.Reasoning = "User attached a target scene; proceeding with an edit instead of asking."
			} else {
				decision.Tool = brain.ToolCreate
				decision.Reasoning = "User attached media; proceeding with a creation instead of asking."
			}
			a.logger.Printf("[INTENT] Clarification overridden by attachments (tool=%s)", decision.Tool)
		} else {
			// 4. Genuine ambiguity with nothing to disambiguate: honor it.
			decision.NeedsClarification = true
			decision.Question = raw.Question
			if decision.Question == "" {
				decision.Question = "Could you tell me more about what you'd like to do?"
			}
			return decision
		}
	}

	// 5. Accept the declared tool, gated fields, and media plan.
	if decision.Tool == "" && brain.KnownTool(raw.Tool) {
		decision.Tool = raw.Tool
	}
	decision.TargetSceneID = firstNonNil(decision.TargetSceneID, parseOptionalUUID(raw.TargetSceneID))
	for _, id := range raw.ReferencedSceneIDs {
		if parsed := parseOptionalUUID(id); parsed != nil {
			decision.ReferencedSceneIDs = append(decision.ReferencedSceneIDs, *parsed)
		}
	}

	if decision.Tool == brain.ToolSourceToVideo && !req.Context.SourceToVideoEnabled {
		// Disabled feature: silently substitute the safe default and strip
		// source-specific fields.
		a.logger.Printf("[INTENT] source_to_video selected but disabled; substituting %s", brain.ToolCreate)
		decision.Tool = brain.ToolCreate
		raw.SourceURL = ""
	}
	decision.SourceURL = raw.SourceURL

	decision.MediaPlan = convertMediaPlan(raw.MediaPlan)
	if brain.KnownImageAction(brain.ImageAction(raw.ImageAction)) {
		decision.ImageAction = brain.ImageAction(raw.ImageAction)
	}

	// 6. Never return a decision with neither a tool nor a clarification.
	if decision.Tool == "" {
		decision.Tool = brain.ToolCreate
		if decision.Reasoning == "" {
			decision.Reasoning = "No usable tool in the model answer; defaulting to creation."
		}
	}

	// 7. Soft tie-break: unset aggregate action + UI-tagged referenced images
	// default to recreate rather than embed.
	if decision.ImageAction == "" && referencesUIContent(decision, req, packet) {
		decision.ImageAction = brain.ActionRecreate
	}

	return decision
}

// referencesUIContent checks whether any plan reference or attachment matches
// a library asset tagged as UI/screenshot content.
func referencesUIContent(decision *brain.Decision, req *brain.Request, packet *brain.ContextPacket) bool {
	if packet == nil {
		return false
	}

	tagsByKey := make(map[string][]string)
	for _, asset := range packet.Library.All() {
		tagsByKey[asset.ID.String()] = asset.Tags
		tagsByKey[asset.URL] = asset.Tags
	}

	// Attachments are checked even without a media plan; the model omitting
	// the plan must not disable the tie-break.
	if decision.MediaPlan != nil {
		for _, ref := range decision.MediaPlan.ImageRefs {
			if brain.HasUITag(tagsByKey[ref]) {
				return true
			}
		}
	}
	for _, url := range req.Context.AttachedImageURLs {
		if brain.HasUITag(tagsByKey[url]) {
			return true
		}
	}
	return false
}

func convertMediaPlan(raw *rawMediaPlan) *brain.MediaPlan {
	if raw == nil {
		return nil
	}
	plan := &brain.MediaPlan{
		ImageRefs:   raw.Images,
		VideoRefs:   raw.Videos,
		Mapping:     raw.Mapping,
		Unsatisfied: raw.Unsatisfied,
		Reasoning:   raw.Reasoning,
	}
	for _, d := range raw.Directives {
		plan.Directives = append(plan.Directives, brain.MediaDirective{
			Ref:       d.Ref,
			Action:    brain.ImageAction(d.Action),
			Placement: d.Placement,
		})
	}
	return plan
}

func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" || s == "null" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func firstNonNil(a, b *uuid.UUID) *uuid.UUID {
	if a != nil {
		return a
	}
	return b
}
