package mapper

import (
	"time"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/model"

	"gorm.io/gorm"
)

type SceneMapper struct{}

func NewSceneMapper() *SceneMapper {
	return &SceneMapper{}
}

func (m *SceneMapper) ToEntity(s *model.Scene) *entity.Scene {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Scene{
		Id:             s.Id,
		Name:           s.Name,
		Content:        s.Content,
		Ordinal:        s.Ordinal,
		DurationFrames: s.DurationFrames,
		ProjectId:      s.ProjectId,
		UserId:         s.UserId,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      s.DeletedAt.Valid,
	}
}

func (m *SceneMapper) ToModel(s *entity.Scene) *model.Scene {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Scene{
		Id:             s.Id,
		Name:           s.Name,
		Content:        s.Content,
		Ordinal:        s.Ordinal,
		DurationFrames: s.DurationFrames,
		ProjectId:      s.ProjectId,
		UserId:         s.UserId,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *SceneMapper) ToEntities(scenes []*model.Scene) []*entity.Scene {
	entities := make([]*entity.Scene, len(scenes))
	for i, s := range scenes {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SceneMapper) ToModels(scenes []*entity.Scene) []*model.Scene {
	models := make([]*model.Scene, len(scenes))
	for i, s := range scenes {
		models[i] = m.ToModel(s)
	}
	return models
}
