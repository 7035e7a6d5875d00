package entity

import (
	"time"

	"github.com/google/uuid"
)

type AssetEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	AssetId        uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
