package view

import (
	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/domain"
)

// BranchLoaded is the project page with data.
const BranchLoaded Branch = "loaded"

// ProjectPage is the model of a single project page.
type ProjectPage struct {
	Title       string
	Branch      Branch
	PendingText string
	ErrorText   string
	// StatusCode of the failed fetch, zero otherwise.
	StatusCode int

	Project  domain.Project
	Role     domain.Role
	Members  MemberList
	BackHref string
}

// BuildProjectPage picks the branch for the fetch result of one project.
func BuildProjectPage(result client.Result[domain.ProjectDetail]) ProjectPage {
	page := ProjectPage{
		Title:    ProjectsTitle,
		BackHref: ProjectsPath,
	}

	switch result.Status() {
	case client.StatusError:
		page.Branch = BranchError
		page.ErrorText = result.Err().DisplayMessage()
		page.StatusCode = result.Err().StatusCode
	case client.StatusOK:
		detail, _ := result.Data()
		page.Branch = BranchLoaded
		page.Title = detail.Project.Name
		page.Project = detail.Project
		page.Role = detail.Role
		page.Members = BuildMemberList(detail.Members)
	default:
		page.Branch = BranchPending
		page.PendingText = "Loading project…"
	}

	return page
}

func (p ProjectPage) IsPending() bool { return p.Branch == BranchPending }
func (p ProjectPage) IsError() bool   { return p.Branch == BranchError }
func (p ProjectPage) IsLoaded() bool  { return p.Branch == BranchLoaded }
