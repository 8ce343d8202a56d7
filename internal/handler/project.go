package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/middleware"
	"github.com/aidar/project-hub/internal/service"
)

// ProjectHandler обрабатывает эндпоинты проектов и их участников
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProjectResponse представляет данные ответа на создание проекта
type CreateProjectResponse struct {
	Project *domain.Project `json:"project"`
}

// MembersResponse представляет список участников проекта
type MembersResponse struct {
	Members []domain.MemberWithUser `json:"members"`
}

// AddMemberResponse представляет данные ответа на добавление участника
type AddMemberResponse struct {
	Member *domain.MemberWithUser `json:"member"`
}

// ListProjects обрабатывает GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	list, err := h.projectService.List(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, list, "")
}

// CreateProject обрабатывает POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())

	project, err := h.projectService.Create(r.Context(), userID, req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, CreateProjectResponse{Project: project}, "Project created")
}

// GetProject обрабатывает GET /api/projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	detail, err := h.projectService.Get(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, detail, "")
}

// ListMembers обрабатывает GET /api/projects/{projectID}/members
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	members, err := h.projectService.ListMembers(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, MembersResponse{Members: members}, "")
}

// AddMember обрабатывает POST /api/projects/{projectID}/members
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req service.AddMemberInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeValidation, "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())

	member, err := h.projectService.AddMember(r.Context(), userID, chi.URLParam(r, "projectID"), req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, AddMemberResponse{Member: member}, "Member added")
}

// RemoveMember обрабатывает DELETE /api/projects/{projectID}/members/{memberID}
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	err := h.projectService.RemoveMember(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "memberID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, struct{}{}, "Member removed")
}
