package implementation

import (
	"context"
	"errors"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/mapper"
	"ai-videobrain-be/internal/model"
	"ai-videobrain-be/internal/repository/contract"
	"ai-videobrain-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaAssetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaAssetMapper
}

func NewMediaAssetRepository(db *gorm.DB) contract.MediaAssetRepository {
	return &MediaAssetRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaAssetMapper(),
	}
}

func (r *MediaAssetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MediaAssetRepositoryImpl) Create(ctx context.Context, asset *entity.MediaAsset) error {
	m := r.mapper.ToModel(asset)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*asset = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaAssetRepositoryImpl) Update(ctx context.Context, asset *entity.MediaAsset) error {
	m := r.mapper.ToModel(asset)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*asset = *r.mapper.ToEntity(m)
	return nil
}

func (r *MediaAssetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MediaAsset{}, id).Error
}

func (r *MediaAssetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error) {
	var m model.MediaAsset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MediaAssetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaAsset, error) {
	var models []*model.MediaAsset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MediaAssetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MediaAsset{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MediaAssetRepositoryImpl) FindProjectAssets(ctx context.Context, projectID uuid.UUID) ([]*entity.MediaAsset, error) {
	var models []*model.MediaAsset
	err := r.db.WithContext(ctx).
		Where("scope = ?", entity.AssetScopeProject).
		Where("project_id = ?", projectID).
		Order("ordinal ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MediaAssetRepositoryImpl) FindPersonalAssets(ctx context.Context, userID, projectID uuid.UUID) ([]*entity.MediaAsset, error) {
	// LEFT JOIN against the link table so one query yields the Linked flag.
	type assetRow struct {
		model.MediaAsset
		LinkId *uuid.UUID
	}
	var rows []assetRow

	err := r.db.WithContext(ctx).
		Table("media_assets").
		Select("media_assets.*, media_asset_links.id AS link_id").
		Joins("LEFT JOIN media_asset_links ON media_asset_links.asset_id = media_assets.id AND media_asset_links.project_id = ?", projectID).
		Where("media_assets.scope = ?", entity.AssetScopePersonal).
		Where("media_assets.user_id = ?", userID).
		Where("media_assets.deleted_at IS NULL").
		Order("media_assets.ordinal ASC, media_assets.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	assets := make([]*entity.MediaAsset, len(rows))
	for i, row := range rows {
		asset := r.mapper.ToEntity(&row.MediaAsset)
		asset.Linked = row.LinkId != nil
		assets[i] = asset
	}
	return assets, nil
}

func (r *MediaAssetRepositoryImpl) Link(ctx context.Context, assetID, projectID uuid.UUID) error {
	link := model.MediaAssetLink{
		Id:        uuid.New(),
		AssetId:   assetID,
		ProjectId: projectID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *MediaAssetRepositoryImpl) Unlink(ctx context.Context, assetID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("asset_id = ? AND project_id = ?", assetID, projectID).
		Delete(&model.MediaAssetLink{}).Error
}
