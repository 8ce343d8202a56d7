package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/repository"
)

const maxProjectNameLength = 100

// CreateProjectInput holds the fields of the new project form
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberInput identifies the user to add and the role to grant
type AddMemberInput struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// ProjectService handles business logic for projects and their members
type ProjectService struct {
	projectRepo    repository.ProjectRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// List returns the projects the user is a member of
func (s *ProjectService) List(ctx context.Context, userID string) (*domain.ProjectList, error) {
	items, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ProjectMembership{}
	}

	return &domain.ProjectList{Items: items}, nil
}

// Create creates a project owned by the user
func (s *ProjectService) Create(ctx context.Context, userID string, in CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxProjectNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxProjectNameLength)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := &domain.Membership{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		UserID:    userID,
		Role:      domain.RoleOwner,
		CreatedAt: now,
	}

	if err := s.projectRepo.CreateWithOwner(ctx, project, owner); err != nil {
		return nil, err
	}

	return project, nil
}

// Get returns the project with its members. Non-members get ErrProjectNotFound.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*domain.ProjectDetail, error) {
	membership, err := s.requireMembership(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &domain.ProjectDetail{
		Project: *project,
		Members: members,
		Role:    membership.Role,
	}, nil
}

// ListMembers returns the members of a project the user belongs to
func (s *ProjectService) ListMembers(ctx context.Context, userID, projectID string) ([]domain.MemberWithUser, error) {
	if _, err := s.requireMembership(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListMembers(ctx, projectID)
}

// AddMember adds a user to the project. Only owners and admins may do this,
// and only owners may grant the owner role.
func (s *ProjectService) AddMember(ctx context.Context, actorID, projectID string, in AddMemberInput) (*domain.MemberWithUser, error) {
	actor, err := s.requireMembership(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManageMembers() {
		return nil, domain.ErrForbidden
	}

	role := in.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if role == domain.RoleOwner && actor.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	membership := domain.Membership{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.membershipRepo.Add(ctx, &membership); err != nil {
		return nil, err
	}

	return &domain.MemberWithUser{Membership: membership, User: user.Summary()}, nil
}

// RemoveMember removes a membership from the project. Owners and admins may remove
// anyone but the last owner; any member may remove themselves.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, membershipID string) error {
	actor, err := s.requireMembership(ctx, actorID, projectID)
	if err != nil {
		return err
	}

	if _, err := uuid.Parse(membershipID); err != nil {
		return domain.ErrMemberNotFound
	}

	target, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if target.ProjectID != projectID {
		return domain.ErrMemberNotFound
	}

	self := target.UserID == actorID
	if !self && !actor.Role.CanManageMembers() {
		return domain.ErrForbidden
	}
	if target.Role == domain.RoleOwner && !self && actor.Role != domain.RoleOwner {
		return domain.ErrForbidden
	}

	return s.membershipRepo.Remove(ctx, target)
}

// requireMembership hides projects the user is not a member of
func (s *ProjectService) requireMembership(ctx context.Context, userID, projectID string) (*domain.Membership, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, domain.ErrProjectNotFound
	}

	membership, err := s.membershipRepo.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return membership, nil
}
