package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAssetRequest struct {
	Url       string     `json:"url" validate:"required,url"`
	Kind      string     `json:"kind" validate:"required,oneof=image video"`
	Scope     string     `json:"scope" validate:"required,oneof=project personal"`
	Name      string     `json:"name"`
	Tags      []string   `json:"tags"`
	ProjectId *uuid.UUID `json:"project_id"`
}

type CreateAssetResponse struct {
	Id uuid.UUID `json:"id"`
}

type AssetResponse struct {
	Id        uuid.UUID `json:"id"`
	Url       string    `json:"url"`
	Kind      string    `json:"kind"`
	Scope     string    `json:"scope"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	Ordinal   int       `json:"ordinal"`
	Linked    bool      `json:"linked"`
	CreatedAt time.Time `json:"created_at"`
}

type LibraryResponse struct {
	Project  []AssetResponse `json:"project"`
	Personal []AssetResponse `json:"personal"`
}

type SearchAssetResponse struct {
	Asset      AssetResponse `json:"asset"`
	Similarity float64       `json:"similarity"`
}

type LinkAssetRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
}

// PublishEmbedAssetMessage is the watermill payload that triggers background
// embedding of an asset's name and tags.
type PublishEmbedAssetMessage struct {
	AssetId uuid.UUID `json:"asset_id"`
}
