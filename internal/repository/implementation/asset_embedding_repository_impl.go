package implementation

import (
	"context"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/mapper"
	"ai-videobrain-be/internal/model"
	"ai-videobrain-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type AssetEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssetEmbeddingMapper
}

func NewAssetEmbeddingRepository(db *gorm.DB) contract.AssetEmbeddingRepository {
	return &AssetEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssetEmbeddingMapper(),
	}
}

func (r *AssetEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.AssetEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssetEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.AssetEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *AssetEmbeddingRepositoryImpl) DeleteByAssetId(ctx context.Context, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&model.AssetEmbedding{}).Error
}

func (r *AssetEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, userID uuid.UUID) ([]*contract.ScoredAssetEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	type result struct {
		model.AssetEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("asset_embeddings").
		Select("asset_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN media_assets ON media_assets.id = asset_embeddings.asset_id").
		Where("media_assets.user_id = ?", userID).
		Where("asset_embeddings.deleted_at IS NULL").
		Where("media_assets.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredAssetEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredAssetEmbedding{
			Embedding:  r.mapper.ToEntity(&res.AssetEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
