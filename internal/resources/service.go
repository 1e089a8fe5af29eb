package resources

import (
	"context"
	"fmt"

	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

// Service owns material and tool CRUD. Every write is scoped to the owner;
// stock committed to a project blocks deletion until the bindings are
// released.
type Service struct {
	store Store
	logg  *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

func (s *Service) Create(ctx context.Context, kind enums.ResourceKind, ownerID uint, req CreateResourceRequest) (*ResourceResponse, error) {
	if req.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if req.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
	}

	record := &Record{
		Name:     req.Name,
		OwnerID:  ownerID,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
	}
	if err := s.store.Create(ctx, kind, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating resource")
	}

	resp := toResourceResponse(record)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, kind enums.ResourceKind, id uint) (*ResourceResponse, error) {
	record, err := s.requireRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	resp := toResourceResponse(record)
	return &resp, nil
}

func (s *Service) ListByOwner(ctx context.Context, kind enums.ResourceKind, ownerID uint) ([]ResourceResponse, error) {
	rows, err := s.store.ListByOwner(ctx, kind, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing resources")
	}
	out := make([]ResourceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResourceResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, kind enums.ResourceKind, id, actorID uint, req UpdateResourceRequest) (*ResourceResponse, error) {
	record, err := s.requireRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can modify this resource")
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
		}
		record.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
		}
		record.UnitCost = *req.UnitCost
	}

	if err := s.store.Update(ctx, kind, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating resource")
	}
	resp := toResourceResponse(record)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, kind enums.ResourceKind, id, actorID uint) error {
	record, err := s.requireRecord(ctx, kind, id)
	if err != nil {
		return err
	}
	if record.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can delete this resource")
	}

	bound, err := s.store.HasBindings(ctx, kind, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking bindings")
	}
	if bound {
		return pkgerrors.New(pkgerrors.CodeConflict, "resource is committed to a project")
	}

	if err := s.store.Delete(ctx, kind, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting resource")
	}
	return nil
}

func (s *Service) requireRecord(ctx context.Context, kind enums.ResourceKind, id uint) (*Record, error) {
	record, err := s.store.FindByID(ctx, kind, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading resource")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", kind))
	}
	return record, nil
}
