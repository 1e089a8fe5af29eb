package tasks

import (
	"time"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
)

type CreateTaskRequest struct {
	Description string `json:"description" validate:"required,min=1,max=2000"`
	Comment     string `json:"comment" validate:"max=2000"`
	AssigneeID  uint   `json:"assignee_id" validate:"required"`
	Status      string `json:"status"`
}

type UpdateTaskRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Comment     *string `json:"comment" validate:"omitempty,max=2000"`
	AssigneeID  *uint   `json:"assignee_id"`
	Status      *string `json:"status"`
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Comment     string    `json:"comment,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  uint      `json:"assignee_id"`
	ProjectID   uint      `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Description: task.Description,
		Comment:     task.Comment,
		Status:      string(task.Status),
		AssigneeID:  task.AssigneeID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
