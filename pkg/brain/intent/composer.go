package intent

import (
	"fmt"
	"strings"

	"ai-videobrain-be/pkg/brain"
)

// Bounds that keep the instruction tractable regardless of project size.
const (
	maxSceneContentChars = 600
	maxTurnChars         = 200
	maxRecentTurns       = 6
	maxLibrarySample     = 8
	maxNameTokens        = 6
)

// PromptComposer serializes the request and context packet into one structured
// instruction for the model.
type PromptComposer struct{}

func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

// Compose builds the full analysis instruction.
func (c *PromptComposer) Compose(req *brain.Request, packet *brain.ContextPacket, prompt string) string {
	var b strings.Builder

	c.writeSystemRole(&b)
	c.writeToolDefinitions(&b, req)
	c.writeScenes(&b, packet)
	c.writeAttachments(&b, req)
	c.writeConversation(&b, packet)
	c.writePageAnalysis(&b, packet)
	c.writeLibrary(&b, packet)
	c.writeUserInput(&b, prompt)
	c.writeOutputStructure(&b)

	return b.String()
}

func (c *PromptComposer) writeSystemRole(b *strings.Builder) {
	b.WriteString("<system_role>\n")
	b.WriteString("You are the decision brain of a video-authoring product.\n")
	b.WriteString("Given a user request and the current project state, you decide WHICH operation to run,\n")
	b.WriteString("WHICH scene it targets, and WHICH media assets it should consume.\n")
	b.WriteString("You do NOT generate content. You only decide.\n")
	b.WriteString("</system_role>\n\n")
}

func (c *PromptComposer) writeToolDefinitions(b *strings.Builder, req *brain.Request) {
	b.WriteString("<tool_definitions>\n")
	b.WriteString("Choose ONE tool, or a multi-step workflow, or ask for clarification.\n\n")

	b.WriteString("create: Synthesize a brand new scene from the request.\n")
	b.WriteString("  - Use when: user wants new content (\"make an intro\", \"add a scene about pricing\")\n\n")

	b.WriteString("edit: Modify an existing scene.\n")
	b.WriteString("  - Use when: user references an existing scene to change (\"make the intro shorter\")\n")
	b.WriteString("  - Requires: target_scene_id\n\n")

	b.WriteString("delete: Remove an existing scene.\n")
	b.WriteString("  - Requires: target_scene_id\n\n")

	if req.Context.SourceToVideoEnabled {
		b.WriteString("source_to_video: Build scenes from an external source URL.\n")
		b.WriteString("  - Use when: the request centers on a linked external page or video\n")
		b.WriteString("  - Requires: source_url\n\n")
	}

	b.WriteString("workflow: An ORDERED list of tool invocations when one operation is not enough\n")
	b.WriteString("  (e.g. create a scene, then edit another to match it).\n\n")

	b.WriteString("clarification: Only when the request is genuinely ambiguous AND no attachment\n")
	b.WriteString("  or selected scene disambiguates it. Prefer a reasonable inference over asking.\n")
	b.WriteString("</tool_definitions>\n\n")
}

func (c *PromptComposer) writeScenes(b *strings.Builder, packet *brain.ContextPacket) {
	b.WriteString("<project_scenes>\n")
	if len(packet.Scenes) == 0 {
		b.WriteString("The project has no scenes yet.\n")
	} else {
		fmt.Fprintf(b, "The project has %d scenes, in order:\n", len(packet.Scenes))
		for i, scene := range packet.Scenes {
			marker := ""
			if i == 0 {
				marker = " (first)"
			}
			if i == len(packet.Scenes)-1 {
				marker = " (most recent)"
			}
			fmt.Fprintf(b, "%d. [%s] \"%s\"%s\n", i+1, scene.ID, scene.Name, marker)
			fmt.Fprintf(b, "   content: %s\n", truncate(scene.Content, maxSceneContentChars))
		}
	}
	b.WriteString("</project_scenes>\n\n")
}

func (c *PromptComposer) writeAttachments(b *strings.Builder, req *brain.Request) {
	b.WriteString("<attachments>\n")
	fmt.Fprintf(b, "The user attached %d images and %d videos to THIS request.\n",
		len(req.Context.AttachedImageURLs), len(req.Context.AttachedVideoURLs))
	if req.Context.AttachedSceneID != nil {
		fmt.Fprintf(b, "The user explicitly attached scene %s as the target.\n", req.Context.AttachedSceneID)
	}
	if req.Context.SelectedSceneID != nil {
		fmt.Fprintf(b, "Scene %s is currently selected in the editor.\n", req.Context.SelectedSceneID)
	}
	b.WriteString("</attachments>\n\n")
}

func (c *PromptComposer) writeConversation(b *strings.Builder, packet *brain.ContextPacket) {
	b.WriteString("<conversation>\n")
	fmt.Fprintf(b, "Summary: %s\n", packet.ConversationSummary)

	turns := packet.RecentTurns
	if len(turns) > maxRecentTurns {
		turns = turns[len(turns)-maxRecentTurns:]
	}
	for _, turn := range turns {
		speaker := "User"
		if turn.Role == "assistant" || turn.Role == "model" {
			speaker = "Assistant"
		}
		fmt.Fprintf(b, "%s: %s\n", speaker, truncate(turn.Content, maxTurnChars))
	}

	if len(packet.TurnImages) > 0 {
		fmt.Fprintf(b, "Images mentioned in recent turns (oldest first):\n")
		for i, media := range packet.TurnImages {
			fmt.Fprintf(b, "  image %d (turn %d): %s\n", i+1, media.TurnIndex, media.URL)
		}
	}
	if len(packet.TurnVideos) > 0 {
		fmt.Fprintf(b, "Videos mentioned in recent turns (oldest first):\n")
		for i, media := range packet.TurnVideos {
			fmt.Fprintf(b, "  video %d (turn %d): %s\n", i+1, media.TurnIndex, media.URL)
		}
	}
	b.WriteString("</conversation>\n\n")
}

func (c *PromptComposer) writePageAnalysis(b *strings.Builder, packet *brain.ContextPacket) {
	if packet.PageAnalysis == nil {
		return
	}
	b.WriteString("<linked_page>\n")
	fmt.Fprintf(b, "The prompt links %s\n", packet.PageAnalysis.URL)
	fmt.Fprintf(b, "Title: %s\n", packet.PageAnalysis.Title)
	fmt.Fprintf(b, "Description: %s\n", truncate(packet.PageAnalysis.Description, maxSceneContentChars))
	if len(packet.PageAnalysis.Headings) > 0 {
		fmt.Fprintf(b, "Headings: %s\n", strings.Join(packet.PageAnalysis.Headings, "; "))
	}
	fmt.Fprintf(b, "Screenshots captured: %d\n", len(packet.PageAnalysis.ScreenshotURLs))
	b.WriteString("</linked_page>\n\n")
}

func (c *PromptComposer) writeLibrary(b *strings.Builder, packet *brain.ContextPacket) {
	b.WriteString("<media_library>\n")
	fmt.Fprintf(b, "Project-scoped assets: %d (directly usable)\n", len(packet.Library.Project))
	fmt.Fprintf(b, "Personal-library assets: %d (need linking before use)\n", len(packet.Library.Personal))

	sample := packet.Library.All()
	if len(sample) > maxLibrarySample {
		sample = sample[:maxLibrarySample]
	}
	for _, asset := range sample {
		fmt.Fprintf(b, "- id=%s scope=%s name=%s tags=[%s]\n",
			asset.ID, asset.Scope, nameTokens(asset.Name), strings.Join(asset.Tags, ","))
	}
	b.WriteString("Reference assets by their id in the media plan.\n")
	b.WriteString("</media_library>\n\n")
}

func (c *PromptComposer) writeUserInput(b *strings.Builder, prompt string) {
	b.WriteString("<user_request>\n")
	b.WriteString(prompt)
	b.WriteString("\n</user_request>\n\n")
}

func (c *PromptComposer) writeOutputStructure(b *strings.Builder) {
	b.WriteString("<output_format>\n")
	b.WriteString("Respond with ONLY valid JSON in this exact structure:\n")
	b.WriteString("{\n")
	b.WriteString("  \"tool\": \"create|edit|delete|source_to_video or empty when clarifying\",\n")
	b.WriteString("  \"needs_clarification\": false,\n")
	b.WriteString("  \"question\": \"only when needs_clarification is true\",\n")
	b.WriteString("  \"workflow\": [{\"tool\": \"create\", \"context\": \"what this step does\", \"target_scene_id\": null, \"depends_on_prev\": false}],\n")
	b.WriteString("  \"target_scene_id\": \"uuid of the scene being edited/deleted, or null\",\n")
	b.WriteString("  \"referenced_scene_ids\": [\"uuids of scenes the request mentions\"],\n")
	b.WriteString("  \"source_url\": \"external source URL or null\",\n")
	b.WriteString("  \"image_action\": \"embed|recreate or null\",\n")
	b.WriteString("  \"media_plan\": {\n")
	b.WriteString("    \"images\": [\"asset ids or URLs, in usage order\"],\n")
	b.WriteString("    \"videos\": [],\n")
	b.WriteString("    \"directives\": [{\"ref\": \"asset id\", \"action\": \"embed|recreate\", \"placement\": \"optional target\"}],\n")
	b.WriteString("    \"mapping\": {},\n")
	b.WriteString("    \"unsatisfied\": [\"references you could not satisfy\"],\n")
	b.WriteString("    \"reasoning\": \"why this media\"\n")
	b.WriteString("  },\n")
	b.WriteString("  \"reasoning\": \"why this decision\",\n")
	b.WriteString("  \"user_message\": \"short friendly message describing what will happen\"\n")
	b.WriteString("}\n")
	b.WriteString("Omit media_plan entirely when the request needs no media.\n")
	b.WriteString("IMPORTANT: Output ONLY the JSON. No preamble, no code fences.\n")
	b.WriteString("</output_format>\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// nameTokens keeps the first few words of an asset name so the instruction
// stays bounded even with long file names.
func nameTokens(name string) string {
	fields := strings.Fields(name)
	if len(fields) > maxNameTokens {
		fields = fields[:maxNameTokens]
	}
	return strings.Join(fields, " ")
}
