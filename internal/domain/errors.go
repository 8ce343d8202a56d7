package domain

import "errors"

// Доменные ошибки
var (
	// ErrUserExists возвращается при регистрации занятого username
	ErrUserExists = errors.New("username already taken")

	// ErrMemberExists возвращается при повторном добавлении участника в проект
	ErrMemberExists = errors.New("user is already a member of this project")

	// ErrLastOwner возвращается при попытке удалить последнего владельца проекта
	ErrLastOwner = errors.New("cannot remove the last owner of a project")

	// ErrForbidden возвращается когда у пользователя недостаточно прав в проекте
	ErrForbidden = errors.New("forbidden")

	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("validation failed")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrProjectNotFound возвращается когда проект не найден (или пользователь в нем не состоит)
	ErrProjectNotFound = errors.New("project not found")

	// ErrMemberNotFound возвращается когда участник проекта не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials возвращается при неверной паре username/password
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeUserExists   ErrorCode = "USER_EXISTS"   // Username занят
	CodeMemberExists ErrorCode = "MEMBER_EXISTS" // Пользователь уже в проекте
	CodeLastOwner    ErrorCode = "LAST_OWNER"    // Нельзя удалить последнего владельца
	CodeForbidden    ErrorCode = "FORBIDDEN"     // Недостаточно прав
	CodeValidation   ErrorCode = "BAD_REQUEST"   // Некорректный запрос
	CodeNotFound     ErrorCode = "NOT_FOUND"     // Ресурс не найден
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"  // Нет или неверная авторизация
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUserExists):
		return CodeUserExists
	case errors.Is(err, ErrMemberExists):
		return CodeMemberExists
	case errors.Is(err, ErrLastOwner):
		return CodeLastOwner
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrMemberNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
