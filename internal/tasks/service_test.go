package tasks

import (
	"context"
	"io"
	"testing"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type stubStore struct {
	tasks    map[uint]*models.Task
	projects map[uint]*models.Project
	users    map[uint]bool
	nextID   uint
}

func newStubStore() *stubStore {
	return &stubStore{
		tasks:    map[uint]*models.Task{},
		projects: map[uint]*models.Project{},
		users:    map[uint]bool{},
		nextID:   1,
	}
}

func (s *stubStore) Create(_ context.Context, task *models.Task) error {
	task.ID = s.nextID
	s.nextID++
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id uint) (*models.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (s *stubStore) ListByProject(_ context.Context, projectID uint) ([]models.Task, error) {
	var out []models.Task
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (s *stubStore) ListByAssignee(_ context.Context, assigneeID uint) ([]models.Task, error) {
	var out []models.Task
	for _, task := range s.tasks {
		if task.AssigneeID == assigneeID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (s *stubStore) Update(_ context.Context, task *models.Task) error {
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *stubStore) Delete(_ context.Context, id uint) error {
	delete(s.tasks, id)
	return nil
}

func (s *stubStore) ProjectByID(_ context.Context, id uint) (*models.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *project
	return &copied, nil
}

func (s *stubStore) UserExists(_ context.Context, id uint) (bool, error) {
	return s.users[id], nil
}

func newTestService(store *stubStore) *Service {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(store, logg)
}

func seededStore() *stubStore {
	store := newStubStore()
	store.projects[1] = &models.Project{ID: 1, CreatorID: 10}
	store.users[10] = true
	store.users[20] = true
	return store
}

func TestCreateTaskDefaultsToPending(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	resp, err := svc.Create(context.Background(), 1, CreateTaskRequest{
		Description: "cut the boards",
		AssigneeID:  20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Status != string(enums.TaskStatusPending) {
		t.Fatalf("expected pending status, got %q", resp.Status)
	}
	if resp.ProjectID != 1 || resp.AssigneeID != 20 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreateTaskUnknownProject(t *testing.T) {
	svc := newTestService(seededStore())
	_, err := svc.Create(context.Background(), 99, CreateTaskRequest{
		Description: "x",
		AssigneeID:  20,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	svc := newTestService(seededStore())
	_, err := svc.Create(context.Background(), 1, CreateTaskRequest{
		Description: "x",
		AssigneeID:  404,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(seededStore())
	_, err := svc.Create(context.Background(), 1, CreateTaskRequest{
		Description: "x",
		AssigneeID:  20,
		Status:      "paused",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "sand edges", AssigneeID: 20})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := "completed"
	resp, err := svc.Update(ctx, created.ID, 20, UpdateTaskRequest{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Status != "completed" {
		t.Fatalf("expected completed, got %q", resp.Status)
	}
}

func TestUpdateTaskPermissions(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "glue joints", AssigneeID: 20})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	comment := "done"
	// A stranger cannot edit.
	if _, err := svc.Update(ctx, created.ID, 77, UpdateTaskRequest{Comment: &comment}); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	// The project creator can.
	if _, err := svc.Update(ctx, created.ID, 10, UpdateTaskRequest{Comment: &comment}); err != nil {
		t.Fatalf("creator update: %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "varnish", AssigneeID: 20})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 77); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, 20); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}
}

func TestListByProject(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "a", AssigneeID: 20}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "b", AssigneeID: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.ListByProject(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(rows))
	}
}

func TestListByAssignee(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "a", AssigneeID: 20}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, 1, CreateTaskRequest{Description: "b", AssigneeID: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.ListByAssignee(ctx, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Description != "a" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestListByProjectUnknownProject(t *testing.T) {
	svc := newTestService(seededStore())
	_, err := svc.ListByProject(context.Background(), 99)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
