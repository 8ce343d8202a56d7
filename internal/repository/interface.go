package repository

import (
	"context"

	"github.com/aidar/project-hub/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByUsername получает пользователя по username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ProjectRepository определяет методы для работы с данными проектов
type ProjectRepository interface {
	// CreateWithOwner создает проект и членство владельца в одной транзакции
	CreateWithOwner(ctx context.Context, project *domain.Project, owner *domain.Membership) error

	// GetByID получает проект по ID
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListByUser возвращает членства пользователя вместе с проектами, новые первыми
	ListByUser(ctx context.Context, userID string) ([]domain.ProjectMembership, error)
}

// MembershipRepository определяет методы для работы с участниками проектов
type MembershipRepository interface {
	// Add добавляет участника в проект
	Add(ctx context.Context, membership *domain.Membership) error

	// Get получает членство пользователя в проекте
	Get(ctx context.Context, projectID, userID string) (*domain.Membership, error)

	// GetByID получает членство по ID
	GetByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// ListMembers возвращает участников проекта с публичными данными пользователей
	ListMembers(ctx context.Context, projectID string) ([]domain.MemberWithUser, error)

	// Remove удаляет участника; последнего владельца удалить нельзя
	Remove(ctx context.Context, membership *domain.Membership) error
}
