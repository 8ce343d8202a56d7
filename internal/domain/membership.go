package domain

import "time"

// Role представляет роль участника в проекте
type Role string

// Возможные роли участника
const (
	RoleOwner  Role = "owner"  // Создатель проекта, может управлять участниками
	RoleAdmin  Role = "admin"  // Может управлять участниками
	RoleMember Role = "member" // Только просмотр
)

// Valid проверяет, что роль входит в список известных
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// CanManageMembers возвращает true для ролей, которым разрешено добавлять и удалять участников
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Membership связывает пользователя с проектом
type Membership struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberWithUser представляет участника проекта с публичными данными пользователя
type MemberWithUser struct {
	Membership
	User UserSummary `json:"user"`
}
