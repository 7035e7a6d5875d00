package mapper

import (
	"time"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type AssetEmbeddingMapper struct{}

func NewAssetEmbeddingMapper() *AssetEmbeddingMapper {
	return &AssetEmbeddingMapper{}
}

func (m *AssetEmbeddingMapper) ToEntity(e *model.AssetEmbedding) *entity.AssetEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.AssetEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		AssetId:        e.AssetId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *AssetEmbeddingMapper) ToModel(e *entity.AssetEmbedding) *model.AssetEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.AssetEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		AssetId:        e.AssetId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *AssetEmbeddingMapper) ToModels(embeddings []*entity.AssetEmbedding) []*model.AssetEmbedding {
	models := make([]*model.AssetEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
