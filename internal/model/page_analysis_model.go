package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PageAnalysis struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url            string         `gorm:"type:text;not null;uniqueIndex"`
	Title          string         `gorm:"type:varchar(512)"`
	Description    string         `gorm:"type:text"`
	Headings       datatypes.JSON `gorm:"type:jsonb"`
	ScreenshotUrls datatypes.JSON `gorm:"type:jsonb"`
	FetchedAt      time.Time      `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (PageAnalysis) TableName() string {
	return "page_analyses"
}
