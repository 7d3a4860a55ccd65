package db

import (
	"context"

	"github.com/taskhub/backend/internal/model"
)

const projectColumns = "id, owner_id, name, description, created_at, updated_at"

func (db *Postgres) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
		INSERT INTO projects (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + projectColumns
	return db.scanProject(ctx, query, p.ID, p.OwnerID, p.Name, p.Description)
}

func (db *Postgres) GetProject(ctx context.Context, ownerID int64, projectID string) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND owner_id = $2`
	return db.scanProject(ctx, query, projectID, ownerID)
}

func (db *Postgres) ListProjects(ctx context.Context, ownerID int64) ([]model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (db *Postgres) UpdateProject(ctx context.Context, ownerID int64, projectID, name, description string) (*model.Project, error) {
	query := `
		UPDATE projects
		SET name = $3, description = $4, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + projectColumns
	return db.scanProject(ctx, query, projectID, ownerID, name, description)
}

func (db *Postgres) DeleteProject(ctx context.Context, ownerID int64, projectID string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, projectID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) scanProject(ctx context.Context, query string, args ...any) (*model.Project, error) {
	var p model.Project
	err := db.Pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
