package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aidar/project-hub/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithOwner создает проект и членство владельца в одной транзакции
func (r *ProjectRepository) CreateWithOwner(ctx context.Context, project *domain.Project, owner *domain.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // после Commit вернет sql.ErrTxDone, игнорируем
	}()

	query := `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, query, project.ID, project.Name, project.Description, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	if err := insertMembership(ctx, tx, owner); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID получает проект по ID
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var p domain.Project
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	return &p, nil
}

// ListByUser возвращает членства пользователя вместе с проектами, новые первыми
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.ProjectMembership, error) {
	query := `
		SELECT m.id, m.project_id, m.user_id, m.role, m.created_at,
		       p.id, p.name, p.description, p.created_at, p.updated_at
		FROM users_on_projects m
		JOIN projects p ON p.id = m.project_id
		WHERE m.user_id = $1
		ORDER BY p.created_at DESC, p.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Пустой список, а не nil: в JSON должно быть "items": []
	items := make([]domain.ProjectMembership, 0)
	for rows.Next() {
		var item domain.ProjectMembership
		if err := rows.Scan(
			&item.ID, &item.ProjectID, &item.UserID, &item.Role, &item.CreatedAt,
			&item.Project.ID, &item.Project.Name, &item.Project.Description,
			&item.Project.CreatedAt, &item.Project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
