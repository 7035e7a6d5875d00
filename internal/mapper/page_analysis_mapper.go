package mapper

import (
	"encoding/json"
	"time"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/model"

	"gorm.io/datatypes"
)

type PageAnalysisMapper struct{}

func NewPageAnalysisMapper() *PageAnalysisMapper {
	return &PageAnalysisMapper{}
}

func (m *PageAnalysisMapper) ToEntity(p *model.PageAnalysis) *entity.PageAnalysis {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var headings []string
	if len(p.Headings) > 0 {
		_ = json.Unmarshal(p.Headings, &headings)
	}
	var screenshots []string
	if len(p.ScreenshotUrls) > 0 {
		_ = json.Unmarshal(p.ScreenshotUrls, &screenshots)
	}

	return &entity.PageAnalysis{
		Id:             p.Id,
		Url:            p.Url,
		Title:          p.Title,
		Description:    p.Description,
		Headings:       headings,
		ScreenshotUrls: screenshots,
		FetchedAt:      p.FetchedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *PageAnalysisMapper) ToModel(p *entity.PageAnalysis) *model.PageAnalysis {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var headings datatypes.JSON
	if len(p.Headings) > 0 {
		if raw, err := json.Marshal(p.Headings); err == nil {
			headings = datatypes.JSON(raw)
		}
	}
	var screenshots datatypes.JSON
	if len(p.ScreenshotUrls) > 0 {
		if raw, err := json.Marshal(p.ScreenshotUrls); err == nil {
			screenshots = datatypes.JSON(raw)
		}
	}

	return &model.PageAnalysis{
		Id:             p.Id,
		Url:            p.Url,
		Title:          p.Title,
		Description:    p.Description,
		Headings:       headings,
		ScreenshotUrls: screenshots,
		FetchedAt:      p.FetchedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
