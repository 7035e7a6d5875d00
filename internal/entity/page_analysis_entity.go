package entity

import (
	"time"

	"github.com/google/uuid"
)

type PageAnalysis struct {
	Id             uuid.UUID
	Url            string
	Title          string
	Description    string
	Headings       []string
	ScreenshotUrls []string
	FetchedAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
