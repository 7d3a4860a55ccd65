package handler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

// In-memory stores backing the endpoint tests. Ownership scoping mirrors the
// SQL layer: a row belonging to someone else reads as not-found.

type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*model.User
	projects map[string]*model.Project
	tasks    map[string]*model.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int64]*model.User{},
		projects: map[string]*model.Project{},
		tasks:    map[string]*model.Task{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, username, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
		if strings.EqualFold(u.Email, email) {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	f.nextID++
	user := &model.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) UpdateUserPassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return db.ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeStore) CreateProject(_ context.Context, p *model.Project) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *p
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.projects[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (f *fakeStore) GetProject(_ context.Context, ownerID int64, projectID string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ListProjects(_ context.Context, ownerID int64) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Project{}
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateProject(_ context.Context, ownerID int64, projectID, name, description string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (f *fakeStore) DeleteProject(_ context.Context, ownerID int64, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return db.ErrNotFound
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeStore) CreateTask(_ context.Context, t *model.Task) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *t
	if copied.ID == "" {
		copied.ID = uuid.NewString()
	}
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.tasks[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (f *fakeStore) GetTask(_ context.Context, ownerID int64, taskID string) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeStore) ListTasks(_ context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []model.Task{}
	for _, task := range f.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.ProjectID != "" && (task.ProjectID == nil || *task.ProjectID != filter.ProjectID) {
			continue
		}
		matched = append(matched, *task)
	}
	total := len(matched)
	if filter.Offset >= total {
		return []model.Task{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, t *model.Task) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return nil, db.ErrNotFound
	}
	copied := *t
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now()
	f.tasks[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (f *fakeStore) DeleteTask(_ context.Context, ownerID int64, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return db.ErrNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:  time.Hour,
		Issuer:    "taskhub",
	}
}

// newTestRouter builds the full route table on in-memory stores.
func newTestRouter(t *testing.T, opts ...service.AuthOption) (*gin.Engine, *service.AuthService, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	authSvc := service.NewAuthService(store, testAuthConfig(), zerolog.Nop(), opts...)
	projectSvc := service.NewProjectService(store)
	taskSvc := service.NewTaskService(store, store)

	r := NewRouter(
		zerolog.Nop(),
		nil,
		authSvc,
		NewAuthHandler(authSvc),
		NewTaskHandler(taskSvc),
		NewProjectHandler(projectSvc),
	)
	return r, authSvc, store
}
