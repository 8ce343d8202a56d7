package domain

import "time"

// Project представляет проект
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectMembership представляет участие пользователя в проекте вместе с самим проектом
// (элемент списка проектов пользователя)
type ProjectMembership struct {
	Membership
	Project Project `json:"project"`
}

// ProjectList представляет коллекцию проектов текущего пользователя
type ProjectList struct {
	Items []ProjectMembership `json:"items"`
}

// ProjectDetail представляет проект со списком участников и ролью текущего пользователя
type ProjectDetail struct {
	Project Project          `json:"project"`
	Members []MemberWithUser `json:"members"`
	Role    Role             `json:"role"`
}
