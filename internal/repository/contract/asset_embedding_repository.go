package contract

import (
	"context"

	"ai-videobrain-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredAssetEmbedding wraps AssetEmbedding with its similarity score
type ScoredAssetEmbedding struct {
	Embedding  *entity.AssetEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type AssetEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.AssetEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.AssetEmbedding) error
	DeleteByAssetId(ctx context.Context, assetID uuid.UUID) error
	// SearchSimilar ranks a user's asset embeddings against a query vector
	// using pgvector cosine distance.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userID uuid.UUID) ([]*ScoredAssetEmbedding, error)
}
