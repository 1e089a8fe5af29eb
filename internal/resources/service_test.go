package resources

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type recKey struct {
	kind enums.ResourceKind
	id   uint
}

type stubStore struct {
	records map[recKey]*Record
	bound   map[recKey]bool
	nextID  uint
}

func newStubStore() *stubStore {
	return &stubStore{
		records: map[recKey]*Record{},
		bound:   map[recKey]bool{},
		nextID:  1,
	}
}

func (s *stubStore) Create(_ context.Context, kind enums.ResourceKind, record *Record) error {
	record.ID = s.nextID
	s.nextID++
	copied := *record
	s.records[recKey{kind, record.ID}] = &copied
	return nil
}

func (s *stubStore) FindByID(_ context.Context, kind enums.ResourceKind, id uint) (*Record, error) {
	record, ok := s.records[recKey{kind, id}]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (s *stubStore) ListByOwner(_ context.Context, kind enums.ResourceKind, ownerID uint) ([]Record, error) {
	var out []Record
	for key, record := range s.records {
		if key.kind == kind && record.OwnerID == ownerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *stubStore) Update(_ context.Context, kind enums.ResourceKind, record *Record) error {
	copied := *record
	s.records[recKey{kind, record.ID}] = &copied
	return nil
}

func (s *stubStore) Delete(_ context.Context, kind enums.ResourceKind, id uint) error {
	delete(s.records, recKey{kind, id})
	return nil
}

func (s *stubStore) HasBindings(_ context.Context, kind enums.ResourceKind, id uint) (bool, error) {
	return s.bound[recKey{kind, id}], nil
}

func newTestService(store *stubStore) *Service {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(store, logg)
}

func TestCreateResource(t *testing.T) {
	svc := newTestService(newStubStore())

	resp, err := svc.Create(context.Background(), enums.ResourceKindMaterial, 1, CreateResourceRequest{
		Name:     "oak plank",
		Quantity: 12,
		UnitCost: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.ID == 0 || resp.OwnerID != 1 || resp.Quantity != 12 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreateResourceRejectsNegatives(t *testing.T) {
	svc := newTestService(newStubStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, enums.ResourceKindMaterial, 1, CreateResourceRequest{Name: "x", Quantity: -1})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.Create(ctx, enums.ResourceKindMaterial, 1, CreateResourceRequest{
		Name:     "x",
		UnitCost: decimal.NewFromInt(-2),
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetResourceNotFound(t *testing.T) {
	svc := newTestService(newStubStore())
	_, err := svc.Get(context.Background(), enums.ResourceKindTool, 404)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateResourceOwnership(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, enums.ResourceKindTool, 1, CreateResourceRequest{Name: "chisel", Quantity: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	qty := 5
	_, err = svc.Update(ctx, enums.ResourceKindTool, created.ID, 2, UpdateResourceRequest{Quantity: &qty})
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	resp, err := svc.Update(ctx, enums.ResourceKindTool, created.ID, 1, UpdateResourceRequest{Quantity: &qty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", resp.Quantity)
	}
}

func TestDeleteResourceBlockedByBindings(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, enums.ResourceKindMaterial, 1, CreateResourceRequest{Name: "yarn", Quantity: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.bound[recKey{enums.ResourceKindMaterial, created.ID}] = true

	err = svc.Delete(ctx, enums.ResourceKindMaterial, created.ID, 1)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteResource(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, enums.ResourceKindMaterial, 1, CreateResourceRequest{Name: "felt", Quantity: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, enums.ResourceKindMaterial, created.ID, 2); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, enums.ResourceKindMaterial, created.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, enums.ResourceKindMaterial, created.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected resource gone, got %v", err)
	}
}

func TestListByOwnerScopesKindAndOwner(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, enums.ResourceKindMaterial, 1, CreateResourceRequest{Name: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, enums.ResourceKindTool, 1, CreateResourceRequest{Name: "b"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, enums.ResourceKindMaterial, 2, CreateResourceRequest{Name: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.ListByOwner(ctx, enums.ResourceKindMaterial, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "a" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
