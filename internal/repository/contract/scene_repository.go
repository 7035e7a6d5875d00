package contract

import (
	"context"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SceneRepository interface {
	Create(ctx context.Context, scene *entity.Scene) error
	Update(ctx context.Context, scene *entity.Scene) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scene, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scene, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
