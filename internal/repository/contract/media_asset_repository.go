package contract

import (
	"context"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, asset *entity.MediaAsset) error
	Update(ctx context.Context, asset *entity.MediaAsset) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MediaAsset, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MediaAsset, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindProjectAssets returns project-scope assets ordered for display.
	FindProjectAssets(ctx context.Context, projectID uuid.UUID) ([]*entity.MediaAsset, error)
	// FindPersonalAssets returns the user's personal library with the Linked
	// flag computed against the given project.
	FindPersonalAssets(ctx context.Context, userID, projectID uuid.UUID) ([]*entity.MediaAsset, error)
	// Link attaches a personal asset to a project. Idempotent.
	Link(ctx context.Context, assetID, projectID uuid.UUID) error
	Unlink(ctx context.Context, assetID, projectID uuid.UUID) error
}
