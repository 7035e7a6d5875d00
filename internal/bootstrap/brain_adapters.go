package bootstrap

import (
	"context"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/pkg/logger"
	"ai-videobrain-be/internal/repository/specification"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/pkg/brain"

	"github.com/google/uuid"
)

// The adapters below satisfy the decision engine's reader contracts on top of
// the gorm repositories.

type sceneReader struct {
	uowFactory unitofwork.RepositoryFactory
}

func (r *sceneReader) ListScenes(ctx context.Context, projectID uuid.UUID) ([]brain.SceneSummary, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	scenes, err := uow.SceneRepository().FindAll(ctx,
		specification.ByProject{ProjectID: projectID},
		specification.SceneOrder{},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]brain.SceneSummary, len(scenes))
	for i, s := range scenes {
		summaries[i] = brain.SceneSummary{
			ID:      s.Id,
			Name:    s.Name,
			Ordinal: s.Ordinal,
			Content: s.Content,
		}
	}
	return summaries, nil
}

type assetReader struct {
	uowFactory unitofwork.RepositoryFactory
}

func (r *assetReader) ListAssets(ctx context.Context, projectID, userID uuid.UUID) (brain.MediaLibrary, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	projectAssets, err := uow.MediaAssetRepository().FindProjectAssets(ctx, projectID)
	if err != nil {
		return brain.MediaLibrary{}, err
	}
	personalAssets, err := uow.MediaAssetRepository().FindPersonalAssets(ctx, userID, projectID)
	if err != nil {
		return brain.MediaLibrary{}, err
	}

	return brain.MediaLibrary{
		Project:  toLibraryAssets(projectAssets, brain.ScopeProject),
		Personal: toLibraryAssets(personalAssets, brain.ScopePersonal),
	}, nil
}

func toLibraryAssets(assets []*entity.MediaAsset, scope brain.AssetScope) []brain.LibraryAsset {
	out := make([]brain.LibraryAsset, len(assets))
	for i, a := range assets {
		out[i] = brain.LibraryAsset{
			ID:      a.Id,
			URL:     a.Url,
			Scope:   scope,
			Linked:  a.Linked,
			Name:    a.Name,
			Tags:    a.Tags,
			Ordinal: a.Ordinal,
		}
	}
	return out
}

// analysisSink persists completed page analyses off the decision path.
type analysisSink struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func (s *analysisSink) PersistAnalysis(analysis *brain.PageAnalysis) {
	go func() {
		ctx := context.Background()
		uow := s.uowFactory.NewUnitOfWork(ctx)
		err := uow.PageAnalysisRepository().Upsert(ctx, &entity.PageAnalysis{
			Id:             uuid.New(),
			Url:            analysis.URL,
			Title:          analysis.Title,
			Description:    analysis.Description,
			Headings:       analysis.Headings,
			ScreenshotUrls: analysis.ScreenshotURLs,
			FetchedAt:      analysis.FetchedAt,
		})
		if err != nil {
			s.logger.Warn("Brain", "Page analysis persistence failed", map[string]interface{}{
				"url":   analysis.URL,
				"error": err.Error(),
			})
		}
	}()
}
