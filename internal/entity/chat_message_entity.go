package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Id        uuid.UUID
	Role      string
	Content   string
	ProjectId uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}
