package mapper

import (
	"encoding/json"
	"time"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaAssetMapper struct{}

func NewMediaAssetMapper() *MediaAssetMapper {
	return &MediaAssetMapper{}
}

func (m *MediaAssetMapper) ToEntity(a *model.MediaAsset) *entity.MediaAsset {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(a.Tags) > 0 {
		// Malformed tag payloads degrade to no tags rather than failing a read.
		_ = json.Unmarshal(a.Tags, &tags)
	}

	return &entity.MediaAsset{
		Id:        a.Id,
		Url:       a.Url,
		Kind:      a.Kind,
		Scope:     a.Scope,
		Name:      a.Name,
		Tags:      tags,
		Ordinal:   a.Ordinal,
		ProjectId: a.ProjectId,
		UserId:    a.UserId,
		CreatedAt: a.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: a.DeletedAt.Valid,
	}
}

func (m *MediaAssetMapper) ToModel(a *entity.MediaAsset) *model.MediaAsset {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	} else if a.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	var tags datatypes.JSON
	if len(a.Tags) > 0 {
		if raw, err := json.Marshal(a.Tags); err == nil {
			tags = datatypes.JSON(raw)
		}
	}

	return &model.MediaAsset{
		Id:        a.Id,
		Url:       a.Url,
		Kind:      a.Kind,
		Scope:     a.Scope,
		Name:      a.Name,
		Tags:      tags,
		Ordinal:   a.Ordinal,
		ProjectId: a.ProjectId,
		UserId:    a.UserId,
		CreatedAt: a.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *MediaAssetMapper) ToEntities(assets []*model.MediaAsset) []*entity.MediaAsset {
	entities := make([]*entity.MediaAsset, len(assets))
	for i, a := range assets {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
