package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProject filters by project id
type ByProject struct {
	ProjectID uuid.UUID
}

func (s ByProject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// ByUser filters by owning user id
type ByUser struct {
	UserID uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByScope filters media assets by scope ("project" | "personal")
type ByScope struct {
	Scope string
}

func (s ByScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scope = ?", s.Scope)
}

// SceneOrder is the canonical timeline ordering for a project's scenes.
type SceneOrder struct{}

func (s SceneOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("ordinal ASC, created_at ASC")
}

// RecentFirst orders by creation time, newest first. Used with Pagination to
// load the tail of a conversation.
type RecentFirst struct{}

func (s RecentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
