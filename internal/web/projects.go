package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/middleware"
	"github.com/aidar/project-hub/internal/view"
)

// ListProjects обрабатывает GET /projects.
// Параметр new=1 открывает диалог создания проекта.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	flow := view.NewCreationFlow()
	if r.URL.Query().Get("new") == "1" {
		flow.Open()
	}
	h.renderProjects(w, r, http.StatusOK, flow)
}

// CreateProject обрабатывает POST /projects (отправка формы из диалога)
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	flow := view.NewCreationFlow()
	flow.Open()

	if err := r.ParseForm(); err != nil {
		flow.Failed("invalid form", view.CreationInput{})
		h.renderProjects(w, r, http.StatusBadRequest, flow)
		return
	}

	input := view.CreationInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	token := middleware.GetTokenFromContext(r.Context())
	project, err := h.api.CreateProject(r.Context(), token, client.CreateProjectRequest{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		status := createFailureStatus(err)
		if status == http.StatusBadGateway {
			h.logger.ErrorContext(r.Context(), "Project creation failed", "error", err)
		} else {
			h.logger.InfoContext(r.Context(), "Project creation rejected", "error", err)
		}
		flow.Failed(client.DisplayMessage(err), input)
		h.renderProjects(w, r, status, flow)
		return
	}

	target, _ := flow.Submitted(project.ID)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// createFailureStatus отделяет ошибки ввода (422) от сбоев API (502)
func createFailureStatus(err error) int {
	var te *client.TransportError
	if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (h *Handler) renderProjects(w http.ResponseWriter, r *http.Request, status int, flow *view.CreationFlow) {
	ctx, cancel := h.fetchContext(r)
	defer cancel()

	token := middleware.GetTokenFromContext(r.Context())
	page := view.BuildProjectsPage(h.api.ListProjects(ctx, token), flow)

	data := layoutData{Title: page.Title, Page: page}
	// Пока открыт диалог страница не обновляется сама, иначе пропадет введенный текст
	if page.IsPending() && !page.Dialog.Open {
		data.RefreshSeconds = pendingRefreshSeconds
	}
	h.render(w, r, status, pageProjects, data)
}

// GetProject обрабатывает GET /projects/{projectID}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.fetchContext(r)
	defer cancel()

	token := middleware.GetTokenFromContext(r.Context())
	page := view.BuildProjectPage(h.api.GetProject(ctx, token, chi.URLParam(r, "projectID")))

	status := http.StatusOK
	data := layoutData{Title: page.Title, Page: page}
	switch {
	case page.IsPending():
		data.RefreshSeconds = pendingRefreshSeconds
	case page.IsError() && page.StatusCode == http.StatusNotFound:
		status = http.StatusNotFound
	case page.IsError() && page.StatusCode == 0:
		status = http.StatusBadGateway
	}
	h.render(w, r, status, pageProject, data)
}

