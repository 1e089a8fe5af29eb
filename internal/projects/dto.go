package projects

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
)

type CreateProjectRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	GroupSize   int             `json:"group_size" validate:"omitempty,min=1,max=50"`
	Difficulty  string          `json:"difficulty" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Cost        decimal.Decimal `json:"cost"`
}

type UpdateProjectRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	GroupSize   *int             `json:"group_size" validate:"omitempty,min=1,max=50"`
	Difficulty  *string          `json:"difficulty"`
	Category    *string          `json:"category"`
	Cost        *decimal.Decimal `json:"cost"`
}

type ListProjectsRequest struct {
	Category   string
	Difficulty string
	CreatorID  uint
	Limit      int
	Cursor     string
}

type ProjectResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	GroupSize   int             `json:"group_size"`
	Difficulty  string          `json:"difficulty"`
	Category    string          `json:"category"`
	CreatorID   uint            `json:"creator_id"`
	Cost        decimal.Decimal `json:"cost"`
	IsCompleted bool            `json:"is_completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CompletionResponse struct {
	ProjectID      uint  `json:"project_id"`
	IsCompleted    bool  `json:"is_completed"`
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}

type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func toProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		GroupSize:   project.GroupSize,
		Difficulty:  string(project.Difficulty),
		Category:    string(project.Category),
		CreatorID:   project.CreatorID,
		Cost:        project.Cost,
		IsCompleted: project.IsCompleted,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
