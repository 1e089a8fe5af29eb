package models

import "time"

// ProjectTool binds a tool to a project with the quantity committed, under
// the same one-row-per-pair rule as ProjectMaterial.
type ProjectTool struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID    uint      `gorm:"column:project_id;not null;uniqueIndex:idx_project_tools_pair,priority:1"`
	ToolID       uint      `gorm:"column:tool_id;not null;uniqueIndex:idx_project_tools_pair,priority:2"`
	QuantityUsed int       `gorm:"column:quantity_used;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
