package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Scene struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Content        string         `gorm:"type:text"`
	Ordinal        int            `gorm:"not null;default:0"`
	DurationFrames int            `gorm:"not null;default:150"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Scene) TableName() string {
	return "scenes"
}
