package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssetKindImage = "image"
	AssetKindVideo = "video"

	AssetScopeProject  = "project"
	AssetScopePersonal = "personal"
)

type MediaAsset struct {
	Id        uuid.UUID
	Url       string
	Kind      string
	Scope     string
	Name      string
	Tags      []string
	Ordinal   int
	ProjectId *uuid.UUID
	UserId    uuid.UUID
	// Linked reports whether this personal asset is attached to the project
	// the library was loaded for. Always false for project-scope assets.
	Linked    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
