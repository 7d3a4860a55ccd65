package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

var ErrNotFound = errors.New("not found")

const maxNameLength = 200

// ProjectStore is implemented by *db.Postgres. Every query is owner-scoped,
// so a project belonging to someone else is indistinguishable from a missing
// one.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, ownerID int64, projectID string) (*model.Project, error)
	ListProjects(ctx context.Context, ownerID int64) ([]model.Project, error)
	UpdateProject(ctx context.Context, ownerID int64, projectID, name, description string) (*model.Project, error)
	DeleteProject(ctx context.Context, ownerID int64, projectID string) error
}

type ProjectService struct {
	store ProjectStore
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

func (s *ProjectService) Create(ctx context.Context, ownerID int64, req model.ProjectRequest) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, ErrInvalidInput
	}

	return s.store.CreateProject(ctx, &model.Project{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: req.Description,
	})
}

func (s *ProjectService) Get(ctx context.Context, ownerID int64, projectID string) (*model.Project, error) {
	project, err := s.store.GetProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID int64) ([]model.Project, error) {
	return s.store.ListProjects(ctx, ownerID)
}

func (s *ProjectService) Update(ctx context.Context, ownerID int64, projectID string, req model.ProjectRequest) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, ErrInvalidInput
	}

	project, err := s.store.UpdateProject(ctx, ownerID, projectID, name, req.Description)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID int64, projectID string) error {
	return mapNotFound(s.store.DeleteProject(ctx, ownerID, projectID))
}

func mapNotFound(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
