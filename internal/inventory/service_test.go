package inventory

import (
	"context"
	"io"
	"testing"

	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type resKey struct {
	kind enums.ResourceKind
	id   uint
}

type bindKey struct {
	kind       enums.ResourceKind
	projectID  uint
	resourceID uint
}

type stubStore struct {
	projects  map[uint]bool
	resources map[resKey]*Resource
	bindings  map[bindKey]*Binding
	nextID    uint
}

func newStubStore() *stubStore {
	return &stubStore{
		projects:  map[uint]bool{},
		resources: map[resKey]*Resource{},
		bindings:  map[bindKey]*Binding{},
		nextID:    1,
	}
}

func (s *stubStore) addResource(kind enums.ResourceKind, id uint, qty int) {
	s.resources[resKey{kind, id}] = &Resource{
		ID:       id,
		Name:     "resource",
		OwnerID:  1,
		Quantity: qty,
		UnitCost: decimal.NewFromInt(2),
	}
}

func (s *stubStore) WithTx(tx *gorm.DB) Store { return s }

func (s *stubStore) ProjectExists(_ context.Context, projectID uint) (bool, error) {
	return s.projects[projectID], nil
}

func (s *stubStore) FindResource(_ context.Context, kind enums.ResourceKind, id uint) (*Resource, error) {
	res, ok := s.resources[resKey{kind, id}]
	if !ok {
		return nil, nil
	}
	copied := *res
	return &copied, nil
}

func (s *stubStore) TakeStock(_ context.Context, kind enums.ResourceKind, id uint, qty int) (bool, error) {
	res, ok := s.resources[resKey{kind, id}]
	if !ok || res.Quantity < qty {
		return false, nil
	}
	res.Quantity -= qty
	return true, nil
}

func (s *stubStore) ReturnStock(_ context.Context, kind enums.ResourceKind, id uint, qty int) error {
	if res, ok := s.resources[resKey{kind, id}]; ok {
		res.Quantity += qty
	}
	return nil
}

func (s *stubStore) FindBinding(_ context.Context, kind enums.ResourceKind, projectID, resourceID uint) (*Binding, error) {
	b, ok := s.bindings[bindKey{kind, projectID, resourceID}]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *stubStore) InsertBinding(_ context.Context, kind enums.ResourceKind, projectID, resourceID uint, qty int) error {
	id := s.nextID
	s.nextID++
	s.bindings[bindKey{kind, projectID, resourceID}] = &Binding{
		ID:           id,
		ProjectID:    projectID,
		ResourceID:   resourceID,
		QuantityUsed: qty,
	}
	return nil
}

func (s *stubStore) SetBindingQuantity(_ context.Context, _ enums.ResourceKind, bindingID uint, qty int) error {
	for _, b := range s.bindings {
		if b.ID == bindingID {
			b.QuantityUsed = qty
		}
	}
	return nil
}

func (s *stubStore) DeleteBinding(_ context.Context, kind enums.ResourceKind, projectID, resourceID uint) (bool, error) {
	key := bindKey{kind, projectID, resourceID}
	if _, ok := s.bindings[key]; !ok {
		return false, nil
	}
	delete(s.bindings, key)
	return true, nil
}

func (s *stubStore) ListBindings(_ context.Context, kind enums.ResourceKind, projectID uint) ([]BindingDetail, error) {
	var out []BindingDetail
	for key, b := range s.bindings {
		if key.kind != kind || key.projectID != projectID {
			continue
		}
		res := s.resources[resKey{kind, key.resourceID}]
		out = append(out, BindingDetail{
			BindingID:    b.ID,
			ResourceID:   b.ResourceID,
			OwnerID:      res.OwnerID,
			Name:         res.Name,
			UnitCost:     res.UnitCost,
			QuantityUsed: b.QuantityUsed,
		})
	}
	return out, nil
}

// total is stock plus everything committed, used to assert conservation.
func (s *stubStore) total(kind enums.ResourceKind, resourceID uint) int {
	sum := s.resources[resKey{kind, resourceID}].Quantity
	for key, b := range s.bindings {
		if key.kind == kind && key.resourceID == resourceID {
			sum += b.QuantityUsed
		}
	}
	return sum
}

type stubRunner struct{}

func (stubRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(store *stubStore) *Service {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(stubRunner{}, store, logg)
}

func TestCommitCreatesBinding(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 10)
	svc := newTestService(store)

	binding, err := svc.Commit(context.Background(), enums.ResourceKindMaterial, 1, 10, 4)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if binding.QuantityUsed != 4 {
		t.Fatalf("expected binding quantity 4, got %d", binding.QuantityUsed)
	}
	if got := store.resources[resKey{enums.ResourceKindMaterial, 10}].Quantity; got != 6 {
		t.Fatalf("expected stock 6, got %d", got)
	}
	if got := store.total(enums.ResourceKindMaterial, 10); got != 10 {
		t.Fatalf("conservation broken: total %d", got)
	}
}

func TestCommitTopsUpExistingBinding(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindTool, 7, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindTool, 1, 7, 4); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	binding, err := svc.Commit(ctx, enums.ResourceKindTool, 1, 7, 3)
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}

	if binding.QuantityUsed != 7 {
		t.Fatalf("expected topped-up quantity 7, got %d", binding.QuantityUsed)
	}
	if len(store.bindings) != 1 {
		t.Fatalf("expected a single binding row, got %d", len(store.bindings))
	}
	if got := store.resources[resKey{enums.ResourceKindTool, 7}].Quantity; got != 3 {
		t.Fatalf("expected stock 3, got %d", got)
	}
}

func TestCommitInsufficientStock(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 5)
	svc := newTestService(store)

	_, err := svc.Commit(context.Background(), enums.ResourceKindMaterial, 1, 10, 6)
	if !pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if got := store.resources[resKey{enums.ResourceKindMaterial, 10}].Quantity; got != 5 {
		t.Fatalf("stock must be untouched after failed commit, got %d", got)
	}
	if len(store.bindings) != 0 {
		t.Fatal("no binding may exist after failed commit")
	}
}

func TestCommitRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(newStubStore())
	for _, qty := range []int{0, -3} {
		_, err := svc.Commit(context.Background(), enums.ResourceKindMaterial, 1, 1, qty)
		if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidQuantity) {
			t.Fatalf("quantity %d: expected invalid quantity, got %v", qty, err)
		}
	}
}

func TestCommitUnknownProject(t *testing.T) {
	store := newStubStore()
	store.addResource(enums.ResourceKindMaterial, 10, 5)
	svc := newTestService(store)

	_, err := svc.Commit(context.Background(), enums.ResourceKindMaterial, 99, 10, 1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCommitUnknownResource(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	svc := newTestService(store)

	_, err := svc.Commit(context.Background(), enums.ResourceKindTool, 1, 404, 1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdjustRaisesCommitment(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindMaterial, 1, 10, 4); err != nil {
		t.Fatalf("commit: %v", err)
	}
	binding, err := svc.Adjust(ctx, enums.ResourceKindMaterial, 1, 10, 9)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}

	if binding.QuantityUsed != 9 {
		t.Fatalf("expected quantity 9, got %d", binding.QuantityUsed)
	}
	if got := store.resources[resKey{enums.ResourceKindMaterial, 10}].Quantity; got != 1 {
		t.Fatalf("expected stock 1, got %d", got)
	}
	if got := store.total(enums.ResourceKindMaterial, 10); got != 10 {
		t.Fatalf("conservation broken: total %d", got)
	}
}

func TestAdjustLowersCommitment(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindMaterial, 1, 10, 8); err != nil {
		t.Fatalf("commit: %v", err)
	}
	binding, err := svc.Adjust(ctx, enums.ResourceKindMaterial, 1, 10, 2)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}

	if binding.QuantityUsed != 2 {
		t.Fatalf("expected quantity 2, got %d", binding.QuantityUsed)
	}
	if got := store.resources[resKey{enums.ResourceKindMaterial, 10}].Quantity; got != 8 {
		t.Fatalf("expected stock 8 after return, got %d", got)
	}
}

func TestAdjustNoChangeIsNoOp(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindTool, 7, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindTool, 1, 7, 5); err != nil {
		t.Fatalf("commit: %v", err)
	}
	binding, err := svc.Adjust(ctx, enums.ResourceKindTool, 1, 7, 5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if binding.QuantityUsed != 5 {
		t.Fatalf("expected unchanged quantity, got %d", binding.QuantityUsed)
	}
	if got := store.resources[resKey{enums.ResourceKindTool, 7}].Quantity; got != 5 {
		t.Fatalf("expected unchanged stock, got %d", got)
	}
}

func TestAdjustInsufficientStock(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 5)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindMaterial, 1, 10, 5); err != nil {
		t.Fatalf("commit: %v", err)
	}
	_, err := svc.Adjust(ctx, enums.ResourceKindMaterial, 1, 10, 8)
	if !pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if b := store.bindings[bindKey{enums.ResourceKindMaterial, 1, 10}]; b.QuantityUsed != 5 {
		t.Fatalf("binding must be untouched after failed adjust, got %d", b.QuantityUsed)
	}
}

func TestAdjustMissingBinding(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 5)
	svc := newTestService(store)

	_, err := svc.Adjust(context.Background(), enums.ResourceKindMaterial, 1, 10, 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdjustRejectsNegativeQuantity(t *testing.T) {
	svc := newTestService(newStubStore())
	_, err := svc.Adjust(context.Background(), enums.ResourceKindMaterial, 1, 1, -1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestReleaseDoesNotRestoreStock(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindMaterial, 1, 10, 6); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := svc.Release(ctx, enums.ResourceKindMaterial, 1, 10); err != nil {
		t.Fatalf("release: %v", err)
	}

	if len(store.bindings) != 0 {
		t.Fatal("binding must be gone after release")
	}
	if got := store.resources[resKey{enums.ResourceKindMaterial, 10}].Quantity; got != 4 {
		t.Fatalf("released quantity must stay consumed, stock %d", got)
	}
}

func TestReleaseMissingBinding(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	svc := newTestService(store)

	err := svc.Release(context.Background(), enums.ResourceKindMaterial, 1, 10)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListForProject(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	store.addResource(enums.ResourceKindMaterial, 10, 10)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Commit(ctx, enums.ResourceKindMaterial, 1, 10, 3); err != nil {
		t.Fatalf("commit: %v", err)
	}

	rows, err := svc.ListForProject(ctx, enums.ResourceKindMaterial, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ResourceID != 10 || rows[0].QuantityUsed != 3 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestListForProjectEmpty(t *testing.T) {
	store := newStubStore()
	store.projects[1] = true
	svc := newTestService(store)

	rows, err := svc.ListForProject(context.Background(), enums.ResourceKindMaterial, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty slice, got %v", rows)
	}
}

func TestListForProjectUnknownProject(t *testing.T) {
	svc := newTestService(newStubStore())
	_, err := svc.ListForProject(context.Background(), enums.ResourceKindMaterial, 42)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
