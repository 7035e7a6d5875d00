package contract

import (
	"context"

	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindRecent returns the last n messages of a project's conversation in
	// chronological order.
	FindRecent(ctx context.Context, projectID uuid.UUID, n int) ([]*entity.ChatMessage, error)
}
