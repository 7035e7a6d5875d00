package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaAsset struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url       string         `gorm:"type:text;not null"`
	Kind      string         `gorm:"type:varchar(16);not null"` // "image" | "video"
	Scope     string         `gorm:"type:varchar(16);not null"` // "project" | "personal"
	Name      string         `gorm:"type:varchar(255)"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	Ordinal   int            `gorm:"not null;default:0"`
	ProjectId *uuid.UUID     `gorm:"type:uuid;index"` // nil for personal-library assets
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

// MediaAssetLink attaches a personal-library asset to one project. Resolution
// only considers personal assets that have a link row for the active project.
type MediaAssetLink struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetId   uuid.UUID `gorm:"type:uuid;not null;index:idx_asset_project,unique"`
	ProjectId uuid.UUID `gorm:"type:uuid;not null;index:idx_asset_project,unique"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MediaAssetLink) TableName() string {
	return "media_asset_links"
}
