package store

// Session is the active conversation state for one user on one project. It is
// memory only; losing it degrades continuity, never correctness.
type Session struct {
	ID        string `json:"id"` // project_id + user_id
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`

	// Last accepted decision, for follow-up turns ("make it longer").
	LastTool          string `json:"last_tool"`
	LastTargetSceneID string `json:"last_target_scene_id"`

	// Attachment memory: the media of the previous turn, so "use the image I
	// sent" keeps working after the upload widget is cleared.
	LastImageURLs []string `json:"last_image_urls"`
	LastVideoURLs []string `json:"last_video_urls"`

	LastPrompt string `json:"last_prompt"`
}

// Key builds the cache key a session is stored under.
func Key(projectID, userID string) string {
	return projectID + ":" + userID
}
