package service

import (
	"context"
	"fmt"
	"time"

	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/pkg/logger"
	"ai-videobrain-be/internal/repository/specification"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/pkg/embedding"

	"github.com/google/uuid"
)

type IMediaService interface {
	CreateAsset(ctx context.Context, userId uuid.UUID, req *dto.CreateAssetRequest) (*dto.CreateAssetResponse, error)
	ListLibrary(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) (*dto.LibraryResponse, error)
	LinkAsset(ctx context.Context, userId uuid.UUID, assetId uuid.UUID, req *dto.LinkAssetRequest) error
	SearchAssets(ctx context.Context, userId uuid.UUID, query string) ([]*dto.SearchAssetResponse, error)
}

type mediaService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	sysLogger         logger.ILogger
}

func NewMediaService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	sysLogger logger.ILogger,
) IMediaService {
	return &mediaService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		sysLogger:         sysLogger,
	}
}

func (s *mediaService) CreateAsset(ctx context.Context, userId uuid.UUID, req *dto.CreateAssetRequest) (*dto.CreateAssetResponse, error) {
	if req.Scope == entity.AssetScopeProject && req.ProjectId == nil {
		return nil, fmt.Errorf("project_id is required for project-scope assets")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	asset := entity.MediaAsset{
		Id:        uuid.New(),
		Url:       req.Url,
		Kind:      req.Kind,
		Scope:     req.Scope,
		Name:      req.Name,
		Tags:      req.Tags,
		ProjectId: req.ProjectId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.MediaAssetRepository().Create(ctx, &asset); err != nil {
		return nil, err
	}

	// Embedding runs in the background; the asset is usable immediately.
	if err := s.publisherService.PublishEmbedAsset(asset.Id); err != nil {
		s.sysLogger.Warn("Media", "Failed to queue asset embedding", map[string]interface{}{
			"asset_id": asset.Id,
			"error":    err.Error(),
		})
	}

	return &dto.CreateAssetResponse{Id: asset.Id}, nil
}

func (s *mediaService) ListLibrary(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) (*dto.LibraryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projectAssets, err := uow.MediaAssetRepository().FindProjectAssets(ctx, projectId)
	if err != nil {
		return nil, err
	}
	personalAssets, err := uow.MediaAssetRepository().FindPersonalAssets(ctx, userId, projectId)
	if err != nil {
		return nil, err
	}

	return &dto.LibraryResponse{
		Project:  toAssetResponses(projectAssets),
		Personal: toAssetResponses(personalAssets),
	}, nil
}

func (s *mediaService) LinkAsset(ctx context.Context, userId uuid.UUID, assetId uuid.UUID, req *dto.LinkAssetRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	asset, err := uow.MediaAssetRepository().FindOne(ctx,
		specification.ByID{ID: assetId},
		specification.ByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if asset == nil {
		return fmt.Errorf("asset not found")
	}
	if asset.Scope != entity.AssetScopePersonal {
		return fmt.Errorf("only personal assets can be linked to a project")
	}

	return uow.MediaAssetRepository().Link(ctx, assetId, req.ProjectId)
}

func (s *mediaService) SearchAssets(ctx context.Context, userId uuid.UUID, query string) ([]*dto.SearchAssetResponse, error) {
	embResp, err := s.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.AssetEmbeddingRepository().SearchSimilar(ctx, embResp.Embedding.Values, 10, userId)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return []*dto.SearchAssetResponse{}, nil
	}

	assetIds := make([]uuid.UUID, 0, len(scored))
	similarity := make(map[uuid.UUID]float64, len(scored))
	for _, hit := range scored {
		assetIds = append(assetIds, hit.Embedding.AssetId)
		similarity[hit.Embedding.AssetId] = hit.Similarity
	}

	assets, err := uow.MediaAssetRepository().FindAll(ctx, specification.ByIDs{IDs: assetIds})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.MediaAsset, len(assets))
	for _, a := range assets {
		byId[a.Id] = a
	}

	// Keep similarity order from the vector search.
	results := make([]*dto.SearchAssetResponse, 0, len(scored))
	for _, hit := range scored {
		asset, ok := byId[hit.Embedding.AssetId]
		if !ok {
			continue
		}
		results = append(results, &dto.SearchAssetResponse{
			Asset:      toAssetResponse(asset),
			Similarity: similarity[asset.Id],
		})
	}
	return results, nil
}

func toAssetResponse(a *entity.MediaAsset) dto.AssetResponse {
	return dto.AssetResponse{
		Id:        a.Id,
		Url:       a.Url,
		Kind:      a.Kind,
		Scope:     a.Scope,
		Name:      a.Name,
		Tags:      a.Tags,
		Ordinal:   a.Ordinal,
		Linked:    a.Linked,
		CreatedAt: a.CreatedAt,
	}
}

func toAssetResponses(assets []*entity.MediaAsset) []dto.AssetResponse {
	out := make([]dto.AssetResponse, len(assets))
	for i, a := range assets {
		out[i] = toAssetResponse(a)
	}
	return out
}
