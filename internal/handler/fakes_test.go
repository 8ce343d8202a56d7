package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/aidar/project-hub/internal/domain"
)

// store хранит данные фейковых репозиториев в памяти
type store struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	projects    map[string]*domain.Project
	memberships map[string]*domain.Membership
}

func newStore() *store {
	return &store{
		users:       map[string]*domain.User{},
		projects:    map[string]*domain.Project{},
		memberships: map[string]*domain.Membership{},
	}
}

type fakeUsers struct{ *store }

func (s fakeUsers) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeProjects struct{ *store }

func (s fakeProjects) CreateWithOwner(_ context.Context, project *domain.Project, owner *domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, m := *project, *owner
	s.projects[p.ID] = &p
	s.memberships[m.ID] = &m
	return nil
}

func (s fakeProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (s fakeProjects) ListByUser(_ context.Context, userID string) ([]domain.ProjectMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []domain.ProjectMembership{}
	for _, m := range s.memberships {
		if m.UserID == userID {
			items = append(items, domain.ProjectMembership{Membership: *m, Project: *s.projects[m.ProjectID]})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Project.Name < items[j].Project.Name })
	return items, nil
}

type fakeMemberships struct{ *store }

func (s fakeMemberships) Add(_ context.Context, membership *domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.memberships {
		if m.ProjectID == membership.ProjectID && m.UserID == membership.UserID {
			return domain.ErrMemberExists
		}
	}
	cp := *membership
	s.memberships[cp.ID] = &cp
	return nil
}

func (s fakeMemberships) Get(_ context.Context, projectID, userID string) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.memberships {
		if m.ProjectID == projectID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (s fakeMemberships) GetByID(_ context.Context, id string) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.memberships[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (s fakeMemberships) ListMembers(_ context.Context, projectID string) ([]domain.MemberWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := []domain.MemberWithUser{}
	for _, m := range s.memberships {
		if m.ProjectID == projectID {
			members = append(members, domain.MemberWithUser{Membership: *m, User: s.users[m.UserID].Summary()})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].User.Username < members[j].User.Username })
	return members, nil
}

func (s fakeMemberships) Remove(_ context.Context, membership *domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if membership.Role == domain.RoleOwner {
		owners := 0
		for _, m := range s.memberships {
			if m.ProjectID == membership.ProjectID && m.Role == domain.RoleOwner {
				owners++
			}
		}
		if owners <= 1 {
			return domain.ErrLastOwner
		}
	}
	if _, ok := s.memberships[membership.ID]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(s.memberships, membership.ID)
	return nil
}
