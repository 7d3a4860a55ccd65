package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskhub/backend/internal/model"
)

const taskColumns = "id, owner_id, project_id, title, description, status, priority, due_date, created_at, updated_at"

func (db *Postgres) CreateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	query := `
		INSERT INTO tasks (id, owner_id, project_id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + taskColumns
	return db.scanTask(ctx, query, t.ID, t.OwnerID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate)
}

func (db *Postgres) GetTask(ctx context.Context, ownerID int64, taskID string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`
	return db.scanTask(ctx, query, taskID, ownerID)
}

// ListTasks returns one page of the owner's tasks plus the unpaged total for
// the same filter.
func (db *Postgres) ListTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, int, error) {
	where := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where = append(where, fmt.Sprintf("project_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, taskColumns, cond, len(args)-1, len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (db *Postgres) UpdateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET project_id = $3, title = $4, description = $5, status = $6, priority = $7, due_date = $8, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns
	return db.scanTask(ctx, query, t.ID, t.OwnerID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate)
}

func (db *Postgres) DeleteTask(ctx context.Context, ownerID int64, taskID string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, taskID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) scanTask(ctx context.Context, query string, args ...any) (*model.Task, error) {
	var t model.Task
	err := db.Pool.QueryRow(ctx, query, args...).Scan(
		&t.ID,
		&t.OwnerID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
