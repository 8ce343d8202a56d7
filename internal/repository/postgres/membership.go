package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aidar/project-hub/internal/domain"
)

// MembershipRepository реализует repository.MembershipRepository для PostgreSQL
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository создает новый экземпляр MembershipRepository
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Add добавляет участника в проект
func (r *MembershipRepository) Add(ctx context.Context, membership *domain.Membership) error {
	return insertMembership(ctx, r.db, membership)
}

func insertMembership(ctx context.Context, q queryer, m *domain.Membership) error {
	query := `
		INSERT INTO users_on_projects (id, project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.ExecContext(ctx, query, m.ID, m.ProjectID, m.UserID, m.Role, m.CreatedAt)
	if err != nil {
		switch code, constraint := pgErrorCode(err); {
		case code == codeUniqueViolation:
			return domain.ErrMemberExists
		case code == codeForeignKeyViolation && constraint == "users_on_projects_user_id_fkey":
			return domain.ErrUserNotFound
		case code == codeForeignKeyViolation:
			return domain.ErrProjectNotFound
		}
		return err
	}

	return nil
}

// Get получает членство пользователя в проекте
func (r *MembershipRepository) Get(ctx context.Context, projectID, userID string) (*domain.Membership, error) {
	query := `
		SELECT id, project_id, user_id, role, created_at
		FROM users_on_projects
		WHERE project_id = $1 AND user_id = $2
	`
	return r.getOne(ctx, query, projectID, userID)
}

// GetByID получает членство по ID
func (r *MembershipRepository) GetByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	query := `
		SELECT id, project_id, user_id, role, created_at
		FROM users_on_projects
		WHERE id = $1
	`
	return r.getOne(ctx, query, membershipID)
}

func (r *MembershipRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Membership, error) {
	var m domain.Membership
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListMembers возвращает участников проекта с публичными данными пользователей
func (r *MembershipRepository) ListMembers(ctx context.Context, projectID string) ([]domain.MemberWithUser, error) {
	query := `
		SELECT m.id, m.project_id, m.user_id, m.role, m.created_at,
		       u.id, u.name, u.username
		FROM users_on_projects m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.created_at, m.id
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.MemberWithUser, 0)
	for rows.Next() {
		var m domain.MemberWithUser
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt,
			&m.User.ID, &m.User.Name, &m.User.Username,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// Remove удаляет участника. Удаление владельца проходит только если в проекте
// остается хотя бы еще один владелец. Строки владельцев блокируются до подсчета,
// поэтому два параллельных удаления не могут оставить проект без владельца.
func (r *MembershipRepository) Remove(ctx context.Context, membership *domain.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // после Commit вернет sql.ErrTxDone, игнорируем
	}()

	// Владельцев блокируем первыми и в одном порядке, чтобы не было взаимных блокировок
	lockOwners := `
		SELECT id FROM users_on_projects
		WHERE project_id = $1 AND role = 'owner'
		ORDER BY id
		FOR UPDATE
	`
	rows, err := tx.QueryContext(ctx, lockOwners, membership.ProjectID)
	if err != nil {
		return fmt.Errorf("lock owners: %w", err)
	}
	owners := 0
	for rows.Next() {
		owners++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("lock owners: %w", err)
	}
	rows.Close()

	lockTarget := `
		SELECT role FROM users_on_projects
		WHERE id = $1 AND project_id = $2
		FOR UPDATE
	`
	var role domain.Role
	if err := tx.QueryRowContext(ctx, lockTarget, membership.ID, membership.ProjectID).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrMemberNotFound
		}
		return fmt.Errorf("lock member: %w", err)
	}

	if role == domain.RoleOwner && owners <= 1 {
		return domain.ErrLastOwner
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users_on_projects WHERE id = $1`, membership.ID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	return tx.Commit()
}
