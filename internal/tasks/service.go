package tasks

import (
	"context"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

// Service owns task CRUD. Changing a task's status never touches the
// project's completion flag; that stays with the explicit recompute call.
type Service struct {
	store Store
	logg  *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

func (s *Service) Create(ctx context.Context, projectID uint, req CreateTaskRequest) (*TaskResponse, error) {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading project")
	}
	if project == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	}

	exists, err := s.store.UserExists(ctx, req.AssigneeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking assignee")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignee does not exist").
			WithDetails(map[string]any{"assignee_id": req.AssigneeID})
	}

	status := enums.TaskStatusPending
	if req.Status != "" {
		status = enums.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown task status").
				WithDetails(map[string]any{"status": req.Status})
		}
	}

	task := &models.Task{
		Description: req.Description,
		Comment:     req.Comment,
		Status:      status,
		AssigneeID:  req.AssigneeID,
		ProjectID:   projectID,
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating task")
	}

	s.logg.Info(s.logg.WithProjectID(ctx, projectID), "task created")
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.requireTask(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID uint) ([]TaskResponse, error) {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading project")
	}
	if project == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	}

	rows, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing tasks")
	}
	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toTaskResponse(&rows[i]))
	}
	return out, nil
}

// ListByAssignee returns the tasks assigned to a user across all projects.
func (s *Service) ListByAssignee(ctx context.Context, assigneeID uint) ([]TaskResponse, error) {
	rows, err := s.store.ListByAssignee(ctx, assigneeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing tasks")
	}
	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toTaskResponse(&rows[i]))
	}
	return out, nil
}

// Update applies partial changes. Only the assignee or the project creator
// may edit a task.
func (s *Service) Update(ctx context.Context, id, actorID uint, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.requireTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditRights(ctx, task, actorID); err != nil {
		return nil, err
	}

	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Comment != nil {
		task.Comment = *req.Comment
	}
	if req.AssigneeID != nil {
		exists, err := s.store.UserExists(ctx, *req.AssigneeID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking assignee")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignee does not exist").
				WithDetails(map[string]any{"assignee_id": *req.AssigneeID})
		}
		task.AssigneeID = *req.AssigneeID
	}
	if req.Status != nil {
		status := enums.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown task status").
				WithDetails(map[string]any{"status": *req.Status})
		}
		task.Status = status
	}

	if err := s.store.Update(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating task")
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id, actorID uint) error {
	task, err := s.requireTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireEditRights(ctx, task, actorID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting task")
	}
	return nil
}

func (s *Service) requireTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading task")
	}
	if task == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}
	return task, nil
}

func (s *Service) requireEditRights(ctx context.Context, task *models.Task, actorID uint) error {
	if task.AssigneeID == actorID {
		return nil
	}
	project, err := s.store.ProjectByID(ctx, task.ProjectID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading project")
	}
	if project != nil && project.CreatorID == actorID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "only the assignee or project creator can edit a task")
}
