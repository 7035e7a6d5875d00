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
)

type SceneRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SceneMapper
}

func NewSceneRepository(db *gorm.DB) contract.SceneRepository {
	return &SceneRepositoryImpl{
		db:     db,
		mapper: mapper.NewSceneMapper(),
	}
}

func (r *SceneRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SceneRepositoryImpl) Create(ctx context.Context, scene *entity.Scene) error {
	m := r.mapper.ToModel(scene)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*scene = *r.mapper.ToEntity(m)
	return nil
}

func (r *SceneRepositoryImpl) Update(ctx context.Context, scene *entity.Scene) error {
	m := r.mapper.ToModel(scene)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*scene = *r.mapper.ToEntity(m)
	return nil
}

func (r *SceneRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Scene{}, id).Error
}

func (r *SceneRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scene, error) {
	var m model.Scene
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SceneRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scene, error) {
	var models []*model.Scene
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SceneRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Scene{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
