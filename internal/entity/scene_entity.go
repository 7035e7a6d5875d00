package entity

import (
	"time"

	"github.com/google/uuid"
)

type Scene struct {
	Id             uuid.UUID
	Name           string
	Content        string
	Ordinal        int
	DurationFrames int
	ProjectId      uuid.UUID
	UserId         uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
