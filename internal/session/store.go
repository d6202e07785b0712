// Package session persists one workflow context per signed-in user between
// HTTP requests. State lives only for the duration of a combine session;
// nothing survives past the configured TTL.
package session

import (
	"context"
	"time"

	"github.com/uwosh/course-combine-api/internal/directory"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

// State names a combine workflow step.
type State string

const (
	StateSemesterUnselected State = "semester_unselected"
	StateSemesterSelected   State = "semester_selected"
	StateSectionsPending    State = "sections_pending"
	StatePendingReview      State = "pending_review"
	StateConfirmed          State = "confirmed"
)

// WorkflowContext is the explicit session value threaded through every
// workflow step: who is asking, where they are in the flow, their section
// directory and the selection under construction.
type WorkflowContext struct {
	ID        string             `json:"id"`
	Requester models.Requester   `json:"requester"`
	State     State              `json:"state"`
	Directory *directory.Directory `json:"directory"`
	Semester  semester.Code      `json:"semester,omitempty"`
	Selection *models.Selection  `json:"selection,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// ErrNotFound is returned when no live context exists for an id.
var ErrNotFound = appErrors.Clone(appErrors.ErrNotFound, "workflow session not found or expired")

// Store keeps workflow contexts for their session lifetime.
type Store interface {
	Save(ctx context.Context, wc *WorkflowContext) error
	Load(ctx context.Context, id string) (*WorkflowContext, error)
	Delete(ctx context.Context, id string) error
}
