package inventory

import (
	"context"
	"fmt"

	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"gorm.io/gorm"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the inventory ledger. All quantity moves between owner stock
// and project bindings run inside a single transaction so stock and binding
// rows never drift apart.
type Service struct {
	runner TxRunner
	store  Store
	logg   *logger.Logger
}

// NewService wires the ledger service.
func NewService(runner TxRunner, store Store, logg *logger.Logger) *Service {
	return &Service{runner: runner, store: store, logg: logg}
}

// Commit moves quantity units of a resource from owner stock into the
// project binding. An existing binding for the same project/resource pair is
// topped up rather than duplicated.
func (s *Service) Commit(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint, quantity int) (*Binding, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be positive")
	}

	var out *Binding
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		if err := s.requireProject(ctx, store, projectID); err != nil {
			return err
		}
		res, err := store.FindResource(ctx, kind, resourceID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading resource")
		}
		if res == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", kind))
		}

		taken, err := store.TakeStock(ctx, kind, resourceID, quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "taking stock")
		}
		if !taken {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock available").
				WithDetails(map[string]any{
					"requested": quantity,
					"available": res.Quantity,
				})
		}

		binding, err := store.FindBinding(ctx, kind, projectID, resourceID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading binding")
		}
		if binding == nil {
			if err := store.InsertBinding(ctx, kind, projectID, resourceID, quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating binding")
			}
			binding, err = store.FindBinding(ctx, kind, projectID, resourceID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading binding")
			}
			if binding == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "binding missing after insert")
			}
		} else {
			newQty := binding.QuantityUsed + quantity
			if err := store.SetBindingQuantity(ctx, kind, binding.ID, newQty); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating binding")
			}
			binding.QuantityUsed = newQty
		}

		out = binding
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"kind":        string(kind),
		"project_id":  projectID,
		"resource_id": resourceID,
		"quantity":    quantity,
	}), "inventory committed")
	return out, nil
}

// Adjust sets a binding's committed quantity to newQuantity, returning the
// difference to owner stock or drawing more from it as needed.
func (s *Service) Adjust(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint, newQuantity int) (*Binding, error) {
	if newQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must not be negative")
	}

	var out *Binding
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		binding, err := store.FindBinding(ctx, kind, projectID, resourceID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading binding")
		}
		if binding == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no committed quantity for this resource")
		}

		delta := newQuantity - binding.QuantityUsed
		switch {
		case delta > 0:
			taken, err := store.TakeStock(ctx, kind, resourceID, delta)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "taking stock")
			}
			if !taken {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock to raise commitment").
					WithDetails(map[string]any{"additional": delta})
			}
		case delta < 0:
			if err := store.ReturnStock(ctx, kind, resourceID, -delta); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "returning stock")
			}
		}

		if delta != 0 {
			if err := store.SetBindingQuantity(ctx, kind, binding.ID, newQuantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating binding")
			}
			binding.QuantityUsed = newQuantity
		}

		out = binding
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Release removes the binding for a project/resource pair. Released
// quantities are treated as consumed by the project and do not return to
// owner stock.
func (s *Service) Release(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint) error {
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		found, err := store.DeleteBinding(ctx, kind, projectID, resourceID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting binding")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no committed quantity for this resource")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"kind":        string(kind),
		"project_id":  projectID,
		"resource_id": resourceID,
	}), "inventory released")
	return nil
}

// ListForProject returns every binding of the given kind attached to the
// project, joined with the resource's name, owner and unit cost.
func (s *Service) ListForProject(ctx context.Context, kind enums.ResourceKind, projectID uint) ([]BindingDetail, error) {
	if err := s.requireProject(ctx, s.store, projectID); err != nil {
		return nil, err
	}

	rows, err := s.store.ListBindings(ctx, kind, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bindings")
	}
	if rows == nil {
		rows = []BindingDetail{}
	}
	return rows, nil
}

func (s *Service) requireProject(ctx context.Context, store Store, projectID uint) error {
	exists, err := store.ProjectExists(ctx, projectID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking project")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	}
	return nil
}
