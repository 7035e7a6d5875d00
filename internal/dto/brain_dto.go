package dto

import (
	"time"

	"github.com/google/uuid"
)

type DecideRequest struct {
	Prompt    string    `json:"prompt" validate:"required"`
	ProjectId uuid.UUID `json:"project_id" validate:"required"`

	AttachedImageUrls []string   `json:"attached_image_urls"`
	AttachedVideoUrls []string   `json:"attached_video_urls"`
	AttachedSceneId   *uuid.UUID `json:"attached_scene_id"`
	SelectedSceneId   *uuid.UUID `json:"selected_scene_id"`

	SourceToVideoEnabled   bool `json:"source_to_video_enabled"`
	ComponentLookupEnabled bool `json:"component_lookup_enabled"`
}

type WorkflowStepResponse struct {
	Tool          string     `json:"tool"`
	Context       string     `json:"context"`
	TargetSceneId *uuid.UUID `json:"target_scene_id,omitempty"`
	DependsOnPrev bool       `json:"depends_on_prev"`
}

type ResolvedDirectiveResponse struct {
	Url       string `json:"url"`
	Action    string `json:"action"`
	Placement string `json:"placement,omitempty"`
}

type ResolvedMediaResponse struct {
	ImageUrls  []string                    `json:"image_urls,omitempty"`
	VideoUrls  []string                    `json:"video_urls,omitempty"`
	Directives []ResolvedDirectiveResponse `json:"directives,omitempty"`
	Suppressed bool                        `json:"suppressed,omitempty"`
}

type DecideResponse struct {
	Tool               string                 `json:"tool,omitempty"`
	NeedsClarification bool                   `json:"needs_clarification"`
	Question           string                 `json:"question,omitempty"`
	Workflow           []WorkflowStepResponse `json:"workflow,omitempty"`
	TargetSceneId      *uuid.UUID             `json:"target_scene_id,omitempty"`
	ReferencedSceneIds []uuid.UUID            `json:"referenced_scene_ids,omitempty"`
	DurationFrames     int                    `json:"duration_frames,omitempty"`
	SourceUrl          string                 `json:"source_url,omitempty"`
	ImageAction        string                 `json:"image_action,omitempty"`
	ResolvedMedia      *ResolvedMediaResponse `json:"resolved_media,omitempty"`
	UserMessage        string                 `json:"user_message"`
	Failed             bool                   `json:"failed"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressEvent is pushed over the websocket hub while a decision runs.
type ProgressEvent struct {
	ProjectId string `json:"project_id"`
	Stage     string `json:"stage"`
}
