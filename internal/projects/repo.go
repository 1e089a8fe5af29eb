package projects

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
	"github.com/craftloop/craftloop-backend/pkg/enums"
	"github.com/craftloop/craftloop-backend/pkg/pagination"
)

// ListFilter narrows and pages the project listing.
type ListFilter struct {
	Category   string
	Difficulty string
	CreatorID  uint
	Limit      int
	Cursor     *pagination.Cursor
}

// TaskTally summarizes a project's tasks for the completion rollup.
type TaskTally struct {
	Total     int64
	Completed int64
}

type Store interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context, filter ListFilter) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	TallyTasks(ctx context.Context, projectID uint) (TaskTally, error)
	SetCompleted(ctx context.Context, projectID uint, completed bool) error
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.CreatorID != 0 {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	var rows []models.Project
	err := query.
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

func (r *Repository) TallyTasks(ctx context.Context, projectID uint) (TaskTally, error) {
	var tally TaskTally
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&tally.Total).Error
	if err != nil {
		return TaskTally{}, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, enums.TaskStatusCompleted).
		Count(&tally.Completed).Error
	if err != nil {
		return TaskTally{}, err
	}
	return tally, nil
}

func (r *Repository) SetCompleted(ctx context.Context, projectID uint, completed bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("is_completed", completed).Error
}
