package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"username занят", ErrUserExists, CodeUserExists},
		{"участник уже есть", ErrMemberExists, CodeMemberExists},
		{"последний владелец", ErrLastOwner, CodeLastOwner},
		{"нет прав", ErrForbidden, CodeForbidden},
		{"обернутая ошибка валидации", fmt.Errorf("%w: name is required", ErrValidation), CodeValidation},
		{"проект не найден", ErrProjectNotFound, CodeNotFound},
		{"участник не найден", ErrMemberNotFound, CodeNotFound},
		{"неверный пароль", ErrInvalidCredentials, CodeUnauthorized},
		{"неизвестная ошибка", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToCode(tt.err))
		})
	}
}

func TestRole(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role("guest").Valid())

	assert.True(t, RoleOwner.CanManageMembers())
	assert.True(t, RoleAdmin.CanManageMembers())
	assert.False(t, RoleMember.CanManageMembers())
}
