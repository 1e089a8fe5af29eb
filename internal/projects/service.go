package projects

import (
	"context"

	"github.com/craftloop/craftloop-backend/pkg/db"
	"github.com/craftloop/craftloop-backend/pkg/db/models"
	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/craftloop/craftloop-backend/pkg/pagination"
)

// Service owns project CRUD and the completion rollup. IsCompleted is only
// ever written through Recompute; task status changes never reach it on
// their own.
type Service struct {
	store Store
	logg  *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

func (s *Service) Create(ctx context.Context, creatorID uint, req CreateProjectRequest) (*ProjectResponse, error) {
	difficulty := enums.Difficulty(req.Difficulty)
	if !difficulty.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty").
			WithDetails(map[string]any{"difficulty": req.Difficulty})
	}
	category := enums.ProjectCategory(req.Category)
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": req.Category})
	}
	if req.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}

	groupSize := req.GroupSize
	if groupSize == 0 {
		groupSize = 1
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		GroupSize:   groupSize,
		Difficulty:  difficulty,
		Category:    category,
		CreatorID:   creatorID,
		Cost:        req.Cost,
	}
	if err := s.store.Create(ctx, project); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you already have a project with this title")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating project")
	}

	s.logg.Info(s.logg.WithProjectID(ctx, project.ID), "project created")
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*ProjectResponse, error) {
	project, err := s.requireProject(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req ListProjectsRequest) (*ProjectListResponse, error) {
	if req.Category != "" && !enums.ProjectCategory(req.Category).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": req.Category})
	}
	if req.Difficulty != "" && !enums.Difficulty(req.Difficulty).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty").
			WithDetails(map[string]any{"difficulty": req.Difficulty})
	}
	cursor, err := pagination.ParseCursor(req.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(req.Limit)
	rows, err := s.store.List(ctx, ListFilter{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		CreatorID:  req.CreatorID,
		Limit:      limit + 1,
		Cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing projects")
	}

	resp := &ProjectListResponse{Items: make([]ProjectResponse, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		resp.Items = append(resp.Items, toProjectResponse(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		resp.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id, actorID uint, req UpdateProjectRequest) (*ProjectResponse, error) {
	project, err := s.requireProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can modify a project")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.GroupSize != nil {
		project.GroupSize = *req.GroupSize
	}
	if req.Difficulty != nil {
		difficulty := enums.Difficulty(*req.Difficulty)
		if !difficulty.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty").
				WithDetails(map[string]any{"difficulty": *req.Difficulty})
		}
		project.Difficulty = difficulty
	}
	if req.Category != nil {
		category := enums.ProjectCategory(*req.Category)
		if !category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
				WithDetails(map[string]any{"category": *req.Category})
		}
		project.Category = category
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
		}
		project.Cost = *req.Cost
	}

	if err := s.store.Update(ctx, project); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you already have a project with this title")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating project")
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id, actorID uint) error {
	project, err := s.requireProject(ctx, id)
	if err != nil {
		return err
	}
	if project.CreatorID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can delete a project")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting project")
	}
	s.logg.Info(s.logg.WithProjectID(ctx, id), "project deleted")
	return nil
}

// RecomputeCompletion re-derives IsCompleted from the project's tasks. A
// project with no tasks is never considered complete. The operation is
// idempotent and is only performed when a caller asks for it.
func (s *Service) RecomputeCompletion(ctx context.Context, id uint) (*ProjectResponse, error) {
	project, err := s.requireProject(ctx, id)
	if err != nil {
		return nil, err
	}

	tally, err := s.store.TallyTasks(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "tallying tasks")
	}

	completed := tally.Total > 0 && tally.Completed == tally.Total
	if completed != project.IsCompleted {
		if err := s.store.SetCompleted(ctx, id, completed); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing completion")
		}
		project.IsCompleted = completed
		s.logg.Info(s.logg.WithProjectID(ctx, id), "project completion recomputed")
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

// CompletionStatus reads the stored flag alongside the current task tally.
// It never writes; the flag may lag the tally until a recompute runs.
func (s *Service) CompletionStatus(ctx context.Context, id uint) (*CompletionResponse, error) {
	project, err := s.requireProject(ctx, id)
	if err != nil {
		return nil, err
	}

	tally, err := s.store.TallyTasks(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "tallying tasks")
	}

	return &CompletionResponse{
		ProjectID:      id,
		IsCompleted:    project.IsCompleted,
		TotalTasks:     tally.Total,
		CompletedTasks: tally.Completed,
	}, nil
}

func (s *Service) requireProject(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading project")
	}
	if project == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	}
	return project, nil
}
