package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/brain/contextbuilder"
	"ai-videobrain-be/pkg/brain/intent"
	"ai-videobrain-be/pkg/brain/mediaplan"
)

// Shown whenever an internal failure reaches the boundary. The caller never
// sees raw internal errors.
const (
	fallbackFailureMessage = "Sorry, something went wrong while working out what to do. Please try again."
	unparseableMessage     = "I couldn't understand your request, please rephrase."
)

const sourceAnalysisTimeout = 30 * time.Second

// SourceAnalyzer produces a bounded textual description of a time range inside
// a long-form external video source.
type SourceAnalyzer interface {
	AnalyzeRange(ctx context.Context, url string, startSec, endSec int) (string, error)
}

// ComponentResolver looks up a named external component and returns structured
// context for it. Opt-in via the request toggle.
type ComponentResolver interface {
	ResolveComponent(ctx context.Context, name string) (string, error)
}

// Orchestrator is the coordinating entry point: prompt rewrites, context
// assembly, intent analysis, gating, media resolution, one Outcome out.
type Orchestrator struct {
	builder    *contextbuilder.Builder
	analyzer   *intent.Analyzer
	resolver   *mediaplan.Resolver
	sources    SourceAnalyzer    // optional
	components ComponentResolver // optional
	logger     *log.Logger
}

func New(
	builder *contextbuilder.Builder,
	analyzer *intent.Analyzer,
	resolver *mediaplan.Resolver,
	sources SourceAnalyzer,
	components ComponentResolver,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		builder:    builder,
		analyzer:   analyzer,
		resolver:   resolver,
		sources:    sources,
		components: components,
		logger:     logger,
	}
}

// Process runs the full decision pipeline for one request. The returned
// Outcome is always safe to show to the user; unhandled failures anywhere in
// the pipeline are converted here.
func (o *Orchestrator) Process(ctx context.Context, req *brain.Request) (outcome *brain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("[BRAIN] Panic recovered: %v", r)
			outcome = o.failureOutcome(req, fallbackFailureMessage)
		}
	}()

	// 1. Cheap deterministic prompt rewrites before any context work.
	effectivePrompt := o.rewritePrompt(ctx, req)

	// 2. Context assembly. Never fails; degrades instead.
	o.progress(req, brain.StageBuildingContext)
	packet := o.builder.Build(ctx, req)

	// 3. Intent analysis on the (possibly rewritten) prompt.
	o.progress(req, brain.StageChoosingApproach)
	decision, err := o.analyzer.Analyze(ctx, req, packet, effectivePrompt)
	if err != nil {
		if errors.Is(err, intent.ErrUnparseable) {
			return o.failureOutcome(req, unparseableMessage)
		}
		o.logger.Printf("[BRAIN] Intent analysis failed: %v", err)
		return o.failureOutcome(req, fallbackFailureMessage)
	}

	// 4. A genuine clarification is a valid terminal outcome, not an error.
	if decision.NeedsClarification {
		o.progress(req, brain.StageDone)
		return &brain.Outcome{
			Decision:        decision,
			OriginalPrompt:  req.Prompt,
			EffectivePrompt: effectivePrompt,
			UserMessage:     decision.Question,
		}
	}

	// 5. Gate, then resolve. When the gate says no, the resolver is never
	// invoked; media falls back to literal attachments only.
	var resolved *brain.ResolvedMediaPlan
	if mediaplan.ShouldResolve(decision, packet, req.Context.AttachmentCount()) {
		o.progress(req, brain.StageResolvingMedia)
		resolved = o.resolver.Resolve(decision, packet, effectivePrompt,
			req.Context.AttachedImageURLs, req.Context.AttachedVideoURLs)
	} else if req.Context.HasAttachments() {
		resolved = &brain.ResolvedMediaPlan{
			ImageURLs: req.Context.AttachedImageURLs,
			VideoURLs: req.Context.AttachedVideoURLs,
		}
	}

	// 6. Final structured output for the external tool executor.
	o.progress(req, brain.StageDone)
	message := decision.UserMessage
	if message == "" {
		message = defaultUserMessage(decision)
	}
	return &brain.Outcome{
		Decision:        decision,
		ResolvedMedia:   resolved,
		OriginalPrompt:  req.Prompt,
		EffectivePrompt: effectivePrompt,
		UserMessage:     message,
	}
}

// rewritePrompt applies the two deterministic pre-context rewrites: long-form
// source folding and opt-in component lookup. Both are best-effort; the prompt
// stays untouched unless the reference is unambiguous and resolution succeeds.
func (o *Orchestrator) rewritePrompt(ctx context.Context, req *brain.Request) string {
	prompt := req.Prompt

	if o.sources != nil {
		if url := brain.DetectVideoURL(prompt); url != "" {
			if tr := brain.DetectTimeRange(prompt); tr != nil {
				if desc := o.analyzeSource(ctx, url, tr); desc != "" {
					prompt = fmt.Sprintf("%s\n\n[Source %s, %d-%ds]: %s",
						prompt, url, tr.StartSec, tr.EndSec, desc)
				}
			}
		}
	}

	if req.Context.ComponentLookupEnabled && o.components != nil {
		if name := detectComponentName(prompt); name != "" {
			context, err := o.components.ResolveComponent(ctx, name)
			if err != nil {
				o.logger.Printf("[BRAIN] Component lookup failed for %q: %v", name, err)
			} else if context != "" {
				prompt = fmt.Sprintf("%s\n\n[Component %s]: %s", prompt, name, context)
			}
		}
	}

	return prompt
}

func (o *Orchestrator) analyzeSource(ctx context.Context, url string, tr *brain.TimeRange) string {
	ctx, cancel := context.WithTimeout(ctx, sourceAnalysisTimeout)
	defer cancel()

	desc, err := o.sources.AnalyzeRange(ctx, url, tr.StartSec, tr.EndSec)
	if err != nil {
		o.logger.Printf("[BRAIN] Source analysis failed for %s: %v", url, err)
		return ""
	}
	return desc
}

// "use the Pricing Table component"
var componentPattern = regexp.MustCompile(`(?i)use (?:the )?([\w][\w \-]{0,40}?) component`)

func detectComponentName(prompt string) string {
	match := componentPattern.FindStringSubmatch(prompt)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func (o *Orchestrator) progress(req *brain.Request, stage string) {
	if req.Progress != nil {
		req.Progress(stage)
	}
}

func (o *Orchestrator) failureOutcome(req *brain.Request, message string) *brain.Outcome {
	return &brain.Outcome{
		Failed:          true,
		UserMessage:     message,
		OriginalPrompt:  req.Prompt,
		EffectivePrompt: req.Prompt,
	}
}

func defaultUserMessage(decision *brain.Decision) string {
	switch {
	case decision.IsWorkflow():
		return fmt.Sprintf("Working through %d steps.", len(decision.Workflow))
	case decision.Tool == brain.ToolEdit:
		return "Updating the scene now."
	case decision.Tool == brain.ToolDelete:
		return "Removing the scene."
	case decision.Tool == brain.ToolSourceToVideo:
		return "Building scenes from your source."
	default:
		return "Creating that for you now."
	}
}
