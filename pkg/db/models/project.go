package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftloop/craftloop-backend/pkg/enums"
)

// Project is a collaborative craft effort. IsCompleted is derived state owned
// by the completion rollup; direct edits never touch it.
type Project struct {
	ID          uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string                `gorm:"column:title;not null;uniqueIndex:idx_projects_creator_title,priority:2"`
	Description string                `gorm:"column:description"`
	GroupSize   int                   `gorm:"column:group_size;not null;default:1"`
	Difficulty  enums.Difficulty      `gorm:"column:difficulty;not null"`
	Category    enums.ProjectCategory `gorm:"column:category;not null"`
	CreatorID   uint                  `gorm:"column:creator_id;not null;uniqueIndex:idx_projects_creator_title,priority:1"`
	Cost        decimal.Decimal       `gorm:"column:cost;type:numeric(12,2);not null"`
	IsCompleted bool                  `gorm:"column:is_completed;not null;default:false"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
