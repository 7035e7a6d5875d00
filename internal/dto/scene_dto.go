package dto

import (
	"time"

	"github.com/google/uuid"
)

type SceneResponse struct {
	Id             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Content        string     `json:"content"`
	Ordinal        int        `json:"ordinal"`
	DurationFrames int        `json:"duration_frames"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
