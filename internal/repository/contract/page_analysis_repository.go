package contract

import (
	"context"

	"ai-videobrain-be/internal/entity"
)

type PageAnalysisRepository interface {
	// Upsert stores an analysis keyed by URL, replacing any previous row.
	Upsert(ctx context.Context, analysis *entity.PageAnalysis) error
	FindByURL(ctx context.Context, url string) (*entity.PageAnalysis, error)
}
