package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tool is reusable equipment owned by exactly one user, tracked with the
// same stock semantics as Material.
type Tool struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	OwnerID   uint            `gorm:"column:owner_id;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null;default:0"`
	UnitCost  decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
