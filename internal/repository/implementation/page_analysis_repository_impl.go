package implementation

import (
	"context"
	"errors"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/mapper"
	"ai-videobrain-be/internal/model"
	"ai-videobrain-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageAnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PageAnalysisMapper
}

func NewPageAnalysisRepository(db *gorm.DB) contract.PageAnalysisRepository {
	return &PageAnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewPageAnalysisMapper(),
	}
}

func (r *PageAnalysisRepositoryImpl) Upsert(ctx context.Context, analysis *entity.PageAnalysis) error {
	m := r.mapper.ToModel(analysis)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "headings", "screenshot_urls", "fetched_at", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*analysis = *r.mapper.ToEntity(m)
	return nil
}

func (r *PageAnalysisRepositoryImpl) FindByURL(ctx context.Context, url string) (*entity.PageAnalysis, error) {
	var m model.PageAnalysis
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
