package unitofwork

import (
	"context"

	"ai-videobrain-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SceneRepository() contract.SceneRepository
	MediaAssetRepository() contract.MediaAssetRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PageAnalysisRepository() contract.PageAnalysisRepository
	AssetEmbeddingRepository() contract.AssetEmbeddingRepository
}
