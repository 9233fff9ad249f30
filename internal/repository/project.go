package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/projectboard/projectboard-go/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

const projectSelect = `SELECT p.id, p.user_id, p.title, p.description, p.created_at, p.updated_at,
		u.id, u.name, u.email, u.password_hash, u.is_admin, u.created_at, u.updated_at
	FROM projects p
	JOIN users u ON u.id = p.user_id`

// ProjectRepository handles project persistence operations.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and sets the generated ID and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	now := time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO projects (user_id, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		project.UserID, project.Title, project.Description, now, now)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

// GetByID retrieves a project together with its owner.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	project := &model.Project{Owner: &model.User{}}
	err := r.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = ?`, id).Scan(
		&project.ID, &project.UserID, &project.Title, &project.Description,
		&project.CreatedAt, &project.UpdatedAt,
		&project.Owner.ID, &project.Owner.Name, &project.Owner.Email, &project.Owner.PasswordHash,
		&project.Owner.IsAdmin, &project.Owner.CreatedAt, &project.Owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

// List retrieves all projects with their owners, ordered by ID.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, projectSelect+` ORDER BY p.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p := model.Project{Owner: &model.User{}}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt,
			&p.Owner.ID, &p.Owner.Name, &p.Owner.Email, &p.Owner.PasswordHash,
			&p.Owner.IsAdmin, &p.Owner.CreatedAt, &p.Owner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Update persists the project's mutable fields by ID.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	now := time.Now().UTC().Truncate(time.Second)
	query := `UPDATE projects SET title = ?, description = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, project.Title, project.Description, now, project.ID)
	if err != nil {
		return err
	}

	project.UpdatedAt = now
	return nil
}

// Delete removes a project by ID.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	return nil
}
