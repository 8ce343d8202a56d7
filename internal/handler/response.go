package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/project-hub/internal/envelope"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithData отправляет успешный ответ в конверте {data, message?}
func RespondWithData[D any](w http.ResponseWriter, r *http.Request, statusCode int, data D, message string) {
	RespondWithJSON(w, r, statusCode, envelope.WithMessage(data, message))
}
