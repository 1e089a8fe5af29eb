package models

import (
	"time"

	"github.com/craftloop/craftloop-backend/pkg/enums"
)

// Task is a unit of project work assigned to a user. Status feeds the
// project completion rollup but never triggers it.
type Task struct {
	ID          uint             `gorm:"column:id;primaryKey;autoIncrement"`
	Description string           `gorm:"column:description;not null"`
	Comment     string           `gorm:"column:comment"`
	Status      enums.TaskStatus `gorm:"column:status;not null;default:pending"`
	AssigneeID  uint             `gorm:"column:assignee_id;not null;index"`
	ProjectID   uint             `gorm:"column:project_id;not null;index"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
