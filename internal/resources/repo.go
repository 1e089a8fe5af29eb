package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftloop/craftloop-backend/pkg/enums"
)

// Record is the shared row shape for materials and tools; the two tables are
// identical apart from their names.
type Record struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name"`
	OwnerID   uint            `gorm:"column:owner_id"`
	Quantity  int             `gorm:"column:quantity"`
	UnitCost  decimal.Decimal `gorm:"column:unit_cost"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

type tableSpec struct {
	resourceTable string
	bindingTable  string
	fkColumn      string
}

var tableSpecs = map[enums.ResourceKind]tableSpec{
	enums.ResourceKindMaterial: {resourceTable: "materials", bindingTable: "project_materials", fkColumn: "material_id"},
	enums.ResourceKindTool:     {resourceTable: "tools", bindingTable: "project_tools", fkColumn: "tool_id"},
}

func specFor(kind enums.ResourceKind) (tableSpec, error) {
	spec, ok := tableSpecs[kind]
	if !ok {
		return tableSpec{}, fmt.Errorf("unknown resource kind %q", kind)
	}
	return spec, nil
}

type Store interface {
	Create(ctx context.Context, kind enums.ResourceKind, record *Record) error
	FindByID(ctx context.Context, kind enums.ResourceKind, id uint) (*Record, error)
	ListByOwner(ctx context.Context, kind enums.ResourceKind, ownerID uint) ([]Record, error)
	Update(ctx context.Context, kind enums.ResourceKind, record *Record) error
	Delete(ctx context.Context, kind enums.ResourceKind, id uint) error
	HasBindings(ctx context.Context, kind enums.ResourceKind, id uint) (bool, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, kind enums.ResourceKind, record *Record) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Table(spec.resourceTable).Create(record).Error
}

func (r *Repository) FindByID(ctx context.Context, kind enums.ResourceKind, id uint) (*Record, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}
	var record Record
	err = r.db.WithContext(ctx).Table(spec.resourceTable).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) ListByOwner(ctx context.Context, kind enums.ResourceKind, ownerID uint) ([]Record, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}
	var rows []Record
	err = r.db.WithContext(ctx).
		Table(spec.resourceTable).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, kind enums.ResourceKind, record *Record) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Table(spec.resourceTable).Save(record).Error
}

func (r *Repository) Delete(ctx context.Context, kind enums.ResourceKind, id uint) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Table(spec.resourceTable).
		Where("id = ?", id).
		Delete(&Record{}).Error
}

func (r *Repository) HasBindings(ctx context.Context, kind enums.ResourceKind, id uint) (bool, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Table(spec.bindingTable).
		Where(spec.fkColumn+" = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
