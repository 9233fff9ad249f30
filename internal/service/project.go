package service

import (
	"context"
	"errors"

	"github.com/projectboard/projectboard-go/internal/model"
	"github.com/projectboard/projectboard-go/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectForbidden = errors.New("not the project owner")
)

// ProjectService handles project business logic.
type ProjectService struct {
	repo *repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create creates a project owned by the authenticated user.
func (s *ProjectService) Create(ctx context.Context, creds Credentials, req model.ProjectRequest) (model.ProjectResponse, error) {
	project := &model.Project{
		UserID:      creds.UserID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, project.ID)
	if err != nil {
		return model.ProjectResponse{}, err
	}

	return created.ToResponse(), nil
}

// List returns all projects with their owners.
func (s *ProjectService) List(ctx context.Context) ([]model.ProjectResponse, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.ProjectResponse, len(projects))
	for i := range projects {
		result[i] = projects[i].ToResponse()
	}
	return result, nil
}

// Get returns a single project by ID.
func (s *ProjectService) Get(ctx context.Context, id int64) (model.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.ProjectResponse{}, ErrProjectNotFound
		}
		return model.ProjectResponse{}, err
	}

	return project.ToResponse(), nil
}

// Update applies a partial update. Only the owner or an admin may update.
func (s *ProjectService) Update(ctx context.Context, creds Credentials, id int64, req model.UpdateProjectRequest) (model.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.ProjectResponse{}, ErrProjectNotFound
		}
		return model.ProjectResponse{}, err
	}

	if project.UserID != creds.UserID && !creds.IsAdmin {
		return model.ProjectResponse{}, ErrProjectForbidden
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	return project.ToResponse(), nil
}

// Delete removes a project. Only the owner or an admin may delete.
func (s *ProjectService) Delete(ctx context.Context, creds Credentials, id int64) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if project.UserID != creds.UserID && !creds.IsAdmin {
		return ErrProjectForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	return nil
}
