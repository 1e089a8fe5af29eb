package resources

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateResourceRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Quantity int             `json:"quantity" validate:"min=0"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type UpdateResourceRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity *int             `json:"quantity" validate:"omitempty,min=0"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

type ResourceResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	OwnerID   uint            `json:"owner_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toResourceResponse(record *Record) ResourceResponse {
	return ResourceResponse{
		ID:        record.ID,
		Name:      record.Name,
		OwnerID:   record.OwnerID,
		Quantity:  record.Quantity,
		UnitCost:  record.UnitCost,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
