package service

import (
	"context"
	"testing"

	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/repository/contract"
	"ai-videobrain-be/internal/repository/specification"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes. Only the methods the media service touches do
// real work; the rest satisfy the contracts.

type fakeAssetRepo struct {
	contract.MediaAssetRepository

	assets []*entity.MediaAsset
	links  map[uuid.UUID]uuid.UUID // assetID -> projectID
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{links: map[uuid.UUID]uuid.UUID{}}
}

func (r *fakeAssetRepo) Create(ctx context.Context, asset *entity.MediaAsset) error {
	r.assets = append(r.assets, asset)
	return nil
}

func (r *fakeAssetRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, a := range r.assets {
				if a.Id == byID.ID {
					return a, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaAsset, error) {
	for _, spec := range specs {
		if byIDs, ok := spec.(specification.ByIDs); ok {
			var out []*entity.MediaAsset
			for _, a := range r.assets {
				for _, id := range byIDs.IDs {
					if a.Id == id {
						out = append(out, a)
					}
				}
			}
			return out, nil
		}
	}
	return r.assets, nil
}

func (r *fakeAssetRepo) FindProjectAssets(ctx context.Context, projectID uuid.UUID) ([]*entity.MediaAsset, error) {
	var out []*entity.MediaAsset
	for _, a := range r.assets {
		if a.Scope == entity.AssetScopeProject && a.ProjectId != nil && *a.ProjectId == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) FindPersonalAssets(ctx context.Context, userID, projectID uuid.UUID) ([]*entity.MediaAsset, error) {
	var out []*entity.MediaAsset
	for _, a := range r.assets {
		if a.Scope == entity.AssetScopePersonal && a.UserId == userID {
			copied := *a
			copied.Linked = r.links[a.Id] == projectID
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) Link(ctx context.Context, assetID, projectID uuid.UUID) error {
	r.links[assetID] = projectID
	return nil
}

type fakeEmbeddingRepo struct {
	contract.AssetEmbeddingRepository

	hits []*contract.ScoredAssetEmbedding
}

func (r *fakeEmbeddingRepo) SearchSimilar(ctx context.Context, emb []float32, limit int, userID uuid.UUID) ([]*contract.ScoredAssetEmbedding, error) {
	return r.hits, nil
}

type fakeUow struct {
	unitofwork.UnitOfWork

	assets     *fakeAssetRepo
	embeddings *fakeEmbeddingRepo
}

func (u *fakeUow) MediaAssetRepository() contract.MediaAssetRepository { return u.assets }
func (u *fakeUow) AssetEmbeddingRepository() contract.AssetEmbeddingRepository {
	return u.embeddings
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

type recordingPublisher struct {
	published []uuid.UUID
}

func (p *recordingPublisher) PublishEmbedAsset(assetID uuid.UUID) error {
	p.published = append(p.published, assetID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestMediaService() (IMediaService, *fakeAssetRepo, *fakeEmbeddingRepo, *recordingPublisher) {
	assets := newFakeAssetRepo()
	embeddings := &fakeEmbeddingRepo{}
	publisher := &recordingPublisher{}
	factory := &fakeUowFactory{uow: &fakeUow{assets: assets, embeddings: embeddings}}
	svc := NewMediaService(factory, publisher, fakeEmbedder{}, nopLogger{})
	return svc, assets, embeddings, publisher
}

func TestCreateAssetQueuesEmbedding(t *testing.T) {
	svc, assets, _, publisher := newTestMediaService()
	userId := uuid.New()
	projectId := uuid.New()

	res, err := svc.CreateAsset(context.Background(), userId, &dto.CreateAssetRequest{
		Url:       "https://cdn.example.com/logo.png",
		Kind:      entity.AssetKindImage,
		Scope:     entity.AssetScopeProject,
		Name:      "logo",
		Tags:      []string{"logo"},
		ProjectId: &projectId,
	})
	require.NoError(t, err)

	require.Len(t, assets.assets, 1)
	assert.Equal(t, res.Id, assets.assets[0].Id)
	assert.Equal(t, userId, assets.assets[0].UserId)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, res.Id, publisher.published[0])
}

func TestCreateProjectAssetRequiresProject(t *testing.T) {
	svc, _, _, _ := newTestMediaService()

	_, err := svc.CreateAsset(context.Background(), uuid.New(), &dto.CreateAssetRequest{
		Url:   "https://cdn.example.com/logo.png",
		Kind:  entity.AssetKindImage,
		Scope: entity.AssetScopeProject,
	})
	assert.Error(t, err)
}

func TestListLibraryPartitionsByScope(t *testing.T) {
	svc, assets, _, _ := newTestMediaService()
	userId := uuid.New()
	projectId := uuid.New()

	assets.assets = []*entity.MediaAsset{
		{Id: uuid.New(), Url: "https://cdn.example.com/a.png", Scope: entity.AssetScopeProject, ProjectId: &projectId, UserId: userId},
		{Id: uuid.New(), Url: "https://cdn.example.com/b.png", Scope: entity.AssetScopePersonal, UserId: userId},
	}

	lib, err := svc.ListLibrary(context.Background(), userId, projectId)
	require.NoError(t, err)
	assert.Len(t, lib.Project, 1)
	assert.Len(t, lib.Personal, 1)
	assert.False(t, lib.Personal[0].Linked)
}

func TestLinkAssetFlipsLinkedFlag(t *testing.T) {
	svc, assets, _, _ := newTestMediaService()
	userId := uuid.New()
	projectId := uuid.New()
	assetId := uuid.New()

	assets.assets = []*entity.MediaAsset{
		{Id: assetId, Url: "https://cdn.example.com/b.png", Scope: entity.AssetScopePersonal, UserId: userId},
	}

	err := svc.LinkAsset(context.Background(), userId, assetId, &dto.LinkAssetRequest{ProjectId: projectId})
	require.NoError(t, err)

	lib, err := svc.ListLibrary(context.Background(), userId, projectId)
	require.NoError(t, err)
	require.Len(t, lib.Personal, 1)
	assert.True(t, lib.Personal[0].Linked)
}

func TestLinkAssetRejectsProjectScope(t *testing.T) {
	svc, assets, _, _ := newTestMediaService()
	userId := uuid.New()
	projectId := uuid.New()
	assetId := uuid.New()

	assets.assets = []*entity.MediaAsset{
		{Id: assetId, Scope: entity.AssetScopeProject, ProjectId: &projectId, UserId: userId},
	}

	err := svc.LinkAsset(context.Background(), userId, assetId, &dto.LinkAssetRequest{ProjectId: projectId})
	assert.Error(t, err)
}

func TestSearchAssetsKeepsSimilarityOrder(t *testing.T) {
	svc, assets, embeddings, _ := newTestMediaService()
	userId := uuid.New()

	first := uuid.New()
	second := uuid.New()
	assets.assets = []*entity.MediaAsset{
		{Id: second, Name: "dashboard", Scope: entity.AssetScopePersonal, UserId: userId},
		{Id: first, Name: "logo", Scope: entity.AssetScopePersonal, UserId: userId},
	}
	embeddings.hits = []*contract.ScoredAssetEmbedding{
		{Embedding: &entity.AssetEmbedding{AssetId: first}, Similarity: 0.9},
		{Embedding: &entity.AssetEmbedding{AssetId: second}, Similarity: 0.4},
	}

	results, err := svc.SearchAssets(context.Background(), userId, "company logo")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0].Asset.Id)
	assert.InDelta(t, 0.9, results[0].Similarity, 1e-9)
	assert.Equal(t, second, results[1].Asset.Id)
}

func TestSearchAssetsEmptyResult(t *testing.T) {
	svc, _, _, _ := newTestMediaService()

	results, err := svc.SearchAssets(context.Background(), uuid.New(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}
