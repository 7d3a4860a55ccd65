package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

type memProjectStore struct {
	mu       sync.Mutex
	projects map[string]*model.Project
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{projects: map[string]*model.Project{}}
}

func (m *memProjectStore) CreateProject(_ context.Context, p *model.Project) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	copied := *p
	copied.CreatedAt = now
	copied.UpdatedAt = now
	m.projects[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *memProjectStore) GetProject(_ context.Context, ownerID int64, projectID string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memProjectStore) ListProjects(_ context.Context, ownerID int64) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProjectStore) UpdateProject(_ context.Context, ownerID int64, projectID, name, description string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (m *memProjectStore) DeleteProject(_ context.Context, ownerID int64, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return db.ErrNotFound
	}
	delete(m.projects, projectID)
	return nil
}

func TestProjectCRUD(t *testing.T) {
	svc := NewProjectService(newMemProjectStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, model.ProjectRequest{Name: "Home", Description: "chores"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Name)

	updated, err := svc.Update(ctx, 1, created.ID, model.ProjectRequest{Name: "Home v2"})
	require.NoError(t, err)
	assert.Equal(t, "Home v2", updated.Name)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	_, err = svc.Get(ctx, 1, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjectValidation(t *testing.T) {
	svc := NewProjectService(newMemProjectStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.ProjectRequest{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectCrossOwnerReadsAsNotFound(t *testing.T) {
	svc := NewProjectService(newMemProjectStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, model.ProjectRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, 2, created.ID, model.ProjectRequest{Name: "Stolen"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrNotFound)

	list, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}
