// Package dto defines the request and response payloads of the combine API.
package dto

import (
	"github.com/uwosh/course-combine-api/internal/directory"
	"github.com/uwosh/course-combine-api/internal/models"
)

// StartSessionRequest carries the identity the LMS sign-in collaborator
// established for the requester.
type StartSessionRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	UniqueName string `json:"unique_name" binding:"required"`
}

// SessionResponse returns the minted token and the opened workflow.
type SessionResponse struct {
	Token      string   `json:"token"`
	WorkflowID string   `json:"workflow_id"`
	State      string   `json:"state"`
	Semesters  []string `json:"semesters"`
}

// SelectSemesterRequest scopes the workflow to one term and year.
type SelectSemesterRequest struct {
	Term string `json:"term" binding:"required"`
	Year int    `json:"year" binding:"required"`
}

// WorkflowResponse reports the workflow position after a step.
type WorkflowResponse struct {
	WorkflowID string `json:"workflow_id"`
	State      string `json:"state"`
	Semester   string `json:"semester,omitempty"`
}

// ChoicesResponse lists the pickable sections for the scoped semester.
type ChoicesResponse struct {
	WorkflowResponse
	Selection []directory.Choice `json:"selection"`
	Base      []directory.Choice `json:"base"`
}

// AddSectionRequest carries the identifying fields of one ad hoc section.
type AddSectionRequest struct {
	SessionLength string `json:"session_length" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	CatalogNumber string `json:"catalog_number" binding:"required"`
	Section       string `json:"section" binding:"required"`
	ClassNumber   string `json:"class_number" binding:"required"`
}

// AddSectionResponse returns the resolved section.
type AddSectionResponse struct {
	WorkflowResponse
	Added models.Section `json:"added"`
}

// SubmitSelectionRequest names the chosen sections and the base.
type SubmitSelectionRequest struct {
	SectionIDs []int64 `json:"section_ids" binding:"required"`
	BaseID     int64   `json:"base_id" binding:"required"`
}

// SelectionResponse reports the built selection. RequiresReview is true
// when the base was not among the chosen sections and the caller must
// acknowledge the merge set before confirmation.
type SelectionResponse struct {
	WorkflowResponse
	Selection      *models.Selection `json:"selection,omitempty"`
	RequiresReview bool              `json:"requires_review"`
}
