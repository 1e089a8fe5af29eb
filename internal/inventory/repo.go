package inventory

import (
	"context"
	"fmt"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
	"github.com/craftloop/craftloop-backend/pkg/enums"
	"gorm.io/gorm"
)

// Store is the persistence surface the ledger runs against. Every method is
// parameterized by resource kind so materials and tools share one code path.
type Store interface {
	WithTx(tx *gorm.DB) Store
	ProjectExists(ctx context.Context, projectID uint) (bool, error)
	FindResource(ctx context.Context, kind enums.ResourceKind, id uint) (*Resource, error)
	TakeStock(ctx context.Context, kind enums.ResourceKind, id uint, qty int) (bool, error)
	ReturnStock(ctx context.Context, kind enums.ResourceKind, id uint, qty int) error
	FindBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint) (*Binding, error)
	InsertBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint, qty int) error
	SetBindingQuantity(ctx context.Context, kind enums.ResourceKind, bindingID uint, qty int) error
	DeleteBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint) (bool, error)
	ListBindings(ctx context.Context, kind enums.ResourceKind, projectID uint) ([]BindingDetail, error)
}

// kindSpec maps a resource kind onto its pair of tables. The ledger SQL is
// identical for both kinds; only the identifiers differ.
type kindSpec struct {
	resourceTable string
	bindingTable  string
	fkColumn      string
}

var kindSpecs = map[enums.ResourceKind]kindSpec{
	enums.ResourceKindMaterial: {resourceTable: "materials", bindingTable: "project_materials", fkColumn: "material_id"},
	enums.ResourceKindTool:     {resourceTable: "tools", bindingTable: "project_tools", fkColumn: "tool_id"},
}

func specFor(kind enums.ResourceKind) (kindSpec, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return kindSpec{}, fmt.Errorf("unknown resource kind %q", kind)
	}
	return spec, nil
}

// Repository implements Store on top of GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) Store {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) ProjectExists(ctx context.Context, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) FindResource(ctx context.Context, kind enums.ResourceKind, id uint) (*Resource, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	var row Resource
	res := r.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT id, name, owner_id, quantity, unit_cost FROM %s WHERE id = ?`,
		spec.resourceTable,
	), id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

// TakeStock decrements on-hand stock with a conditional update so two
// concurrent commits cannot oversell: zero rows affected means the stock
// check failed inside the database.
func (r *Repository) TakeStock(ctx context.Context, kind enums.ResourceKind, id uint, qty int) (bool, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`UPDATE %s
		 SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND quantity >= ?`,
		spec.resourceTable,
	), qty, id, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) ReturnStock(ctx context.Context, kind enums.ResourceKind, id uint, qty int) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`UPDATE %s
		 SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		spec.resourceTable,
	), qty, id).Error
}

func (r *Repository) FindBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint) (*Binding, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	var row Binding
	res := r.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT id, project_id, %s AS resource_id, quantity_used
		 FROM %s WHERE project_id = ? AND %s = ?`,
		spec.fkColumn, spec.bindingTable, spec.fkColumn,
	), projectID, resourceID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *Repository) InsertBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint, qty int) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`INSERT INTO %s (project_id, %s, quantity_used, created_at, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		spec.bindingTable, spec.fkColumn,
	), projectID, resourceID, qty).Error
}

func (r *Repository) SetBindingQuantity(ctx context.Context, kind enums.ResourceKind, bindingID uint, qty int) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`UPDATE %s SET quantity_used = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		spec.bindingTable,
	), qty, bindingID).Error
}

func (r *Repository) DeleteBinding(ctx context.Context, kind enums.ResourceKind, projectID, resourceID uint) (bool, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Exec(fmt.Sprintf(
		`DELETE FROM %s WHERE project_id = ? AND %s = ?`,
		spec.bindingTable, spec.fkColumn,
	), projectID, resourceID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) ListBindings(ctx context.Context, kind enums.ResourceKind, projectID uint) ([]BindingDetail, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []BindingDetail
	err = r.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT b.id AS binding_id,
		        r.id AS resource_id,
		        r.owner_id,
		        r.name,
		        r.unit_cost,
		        b.quantity_used
		 FROM %s b
		 JOIN %s r ON r.id = b.%s
		 WHERE b.project_id = ?
		 ORDER BY b.id ASC`,
		spec.bindingTable, spec.resourceTable, spec.fkColumn,
	), projectID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
