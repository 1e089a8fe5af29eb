package inventory

import "github.com/shopspring/decimal"

// Resource is the kind-independent view of a stockable row (material or
// tool). Quantity is the on-hand, uncommitted stock.
type Resource struct {
	ID       uint
	Name     string
	OwnerID  uint
	Quantity int
	UnitCost decimal.Decimal
}

// Binding is the kind-independent view of a project/resource commitment row.
type Binding struct {
	ID           uint
	ProjectID    uint
	ResourceID   uint
	QuantityUsed int
}

// BindingDetail is the read model returned when listing a project's
// committed resources.
type BindingDetail struct {
	BindingID    uint            `json:"binding_id"`
	ResourceID   uint            `json:"resource_id"`
	OwnerID      uint            `json:"owner_id"`
	Name         string          `json:"name"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	QuantityUsed int             `json:"quantity_used"`
}
