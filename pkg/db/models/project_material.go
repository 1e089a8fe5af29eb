package models

import "time"

// ProjectMaterial binds a material to a project with the quantity committed.
// At most one row exists per (project, material) pair; repeat commits grow
// QuantityUsed instead of inserting duplicates.
type ProjectMaterial struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID    uint      `gorm:"column:project_id;not null;uniqueIndex:idx_project_materials_pair,priority:1"`
	MaterialID   uint      `gorm:"column:material_id;not null;uniqueIndex:idx_project_materials_pair,priority:2"`
	QuantityUsed int       `gorm:"column:quantity_used;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
