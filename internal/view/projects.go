package view

import (
	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/domain"
)

// Fixed texts of the projects page.
const (
	ProjectsTitle     = "Projects"
	ProjectsPath      = "/projects"
	AddProjectHint    = "Add new project"
	EmptyMessage      = "You don't have any projects yet"
	EmptyCallToAction = "Add Your First Project"
	PendingMessage    = "Loading projects…"
	DialogTitle       = "New Project"
	openDialogPath    = ProjectsPath + "?new=1"
)

// Branch is the state a page renders.
type Branch string

const (
	BranchPending   Branch = "pending"
	BranchError     Branch = "error"
	BranchPopulated Branch = "populated"
	BranchEmpty     Branch = "empty"
)

// Action is a link or button the user can follow.
type Action struct {
	Label string
	Hint  string
	Href  string
}

// Card is one project in the grid. Key is the project's ID, not the membership's.
type Card struct {
	Key         string
	Name        string
	Description string
	Role        domain.Role
	Href        string
}

// Dialog is the new project dialog.
type Dialog struct {
	Open        bool
	Title       string
	FormAction  string
	DismissHref string
	Error       string
	Input       CreationInput
}

// ProjectsPage is the model of the projects list page.
type ProjectsPage struct {
	Title  string
	Branch Branch

	// AddAction is the header button; it is present in every branch.
	AddAction Action

	PendingText string
	ErrorText   string
	Cards       []Card

	EmptyText string
	// CallToAction is set only in the empty branch.
	CallToAction *Action

	Dialog Dialog
}

// BuildProjectsPage picks the branch for the fetch result and fills it in.
func BuildProjectsPage(result client.Result[domain.ProjectList], flow *CreationFlow) ProjectsPage {
	if flow == nil {
		flow = NewCreationFlow()
	}

	page := ProjectsPage{
		Title: ProjectsTitle,
		AddAction: Action{
			Label: "+",
			Hint:  AddProjectHint,
			Href:  openDialogPath,
		},
		Dialog: Dialog{
			Open:        flow.IsOpen(),
			Title:       DialogTitle,
			FormAction:  ProjectsPath,
			DismissHref: ProjectsPath,
			Error:       flow.formError,
			Input:       flow.input,
		},
	}

	switch result.Status() {
	case client.StatusError:
		page.Branch = BranchError
		page.ErrorText = result.Err().DisplayMessage()
	case client.StatusOK:
		list, _ := result.Data()
		if len(list.Items) > 0 {
			page.Branch = BranchPopulated
			page.Cards = buildCards(list.Items)
		} else {
			page.Branch = BranchEmpty
			page.EmptyText = EmptyMessage
			page.CallToAction = &Action{Label: EmptyCallToAction, Href: openDialogPath}
		}
	default:
		page.Branch = BranchPending
		page.PendingText = PendingMessage
	}

	return page
}

func buildCards(items []domain.ProjectMembership) []Card {
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, Card{
			Key:         item.Project.ID,
			Name:        item.Project.Name,
			Description: item.Project.Description,
			Role:        item.Role,
			Href:        ProjectPath(item.Project.ID),
		})
	}
	return cards
}

// IsPending and friends let templates branch without comparing strings.
func (p ProjectsPage) IsPending() bool   { return p.Branch == BranchPending }
func (p ProjectsPage) IsError() bool     { return p.Branch == BranchError }
func (p ProjectsPage) IsPopulated() bool { return p.Branch == BranchPopulated }
func (p ProjectsPage) IsEmpty() bool     { return p.Branch == BranchEmpty }
