package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/envelope"
)

// RespondWithError отправляет ответ с ошибкой в конверте {message, code}
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	RespondWithJSON(w, r, statusCode, envelope.Error{
		Message: message,
		Code:    string(code),
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch code {
	case domain.CodeValidation:
		RespondWithError(w, r, http.StatusBadRequest, code, err.Error())
	case domain.CodeUnauthorized:
		message := "unauthorized"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			message = domain.ErrInvalidCredentials.Error()
		}
		RespondWithError(w, r, http.StatusUnauthorized, code, message)
	case domain.CodeForbidden:
		RespondWithError(w, r, http.StatusForbidden, code, "you do not have permission to do this")
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, code, notFoundMessage(err))
	case domain.CodeUserExists, domain.CodeMemberExists, domain.CodeLastOwner:
		RespondWithError(w, r, http.StatusConflict, code, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "error", err, "path", r.URL.Path)
		RespondWithError(w, r, http.StatusInternalServerError, code, "internal server error")
	}
}

func notFoundMessage(err error) string {
	for _, known := range []error{domain.ErrProjectNotFound, domain.ErrUserNotFound, domain.ErrMemberNotFound} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return domain.ErrNotFound.Error()
}
