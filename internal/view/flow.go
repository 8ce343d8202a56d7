package view

import (
	"net/url"
)

// FlowState is the visibility of the new project dialog.
type FlowState int

const (
	// FlowClosed is the initial state.
	FlowClosed FlowState = iota
	// FlowOpen shows the dialog with the creation form.
	FlowOpen
)

func (s FlowState) String() string {
	if s == FlowOpen {
		return "open"
	}
	return "closed"
}

// CreationInput is what the user typed into the creation form.
type CreationInput struct {
	Name        string
	Description string
}

// CreationFlow drives the new project dialog: open, then either dismiss or submit.
// It is owned by the page that renders the dialog.
type CreationFlow struct {
	state     FlowState
	formError string
	input     CreationInput
}

// NewCreationFlow returns a closed flow.
func NewCreationFlow() *CreationFlow {
	return &CreationFlow{state: FlowClosed}
}

// State returns the current state.
func (f *CreationFlow) State() FlowState { return f.state }

// IsOpen reports whether the dialog is visible.
func (f *CreationFlow) IsOpen() bool { return f.state == FlowOpen }

// Open shows the dialog. Opening an open dialog changes nothing.
func (f *CreationFlow) Open() {
	if f.state == FlowOpen {
		return
	}
	f.state = FlowOpen
	f.formError = ""
	f.input = CreationInput{}
}

// Dismiss closes the dialog and forgets the form.
func (f *CreationFlow) Dismiss() {
	f.state = FlowClosed
	f.formError = ""
	f.input = CreationInput{}
}

// Submitted records a successful submission: the dialog closes and the returned
// target is the new project's page. ok is false when the dialog was not open.
func (f *CreationFlow) Submitted(projectID string) (target string, ok bool) {
	if f.state != FlowOpen {
		return "", false
	}
	f.Dismiss()
	return ProjectPath(projectID), true
}

// Failed records a rejected submission. The dialog stays open with the user's
// input and the error message.
func (f *CreationFlow) Failed(message string, input CreationInput) {
	f.state = FlowOpen
	f.formError = message
	f.input = input
}

// ProjectPath is the page of a single project.
func ProjectPath(projectID string) string {
	return ProjectsPath + "/" + url.PathEscape(projectID)
}
