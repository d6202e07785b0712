package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uwosh/course-combine-api/internal/dto"
	"github.com/uwosh/course-combine-api/internal/middleware"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
	"github.com/uwosh/course-combine-api/internal/service"
	"github.com/uwosh/course-combine-api/internal/session"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
	"github.com/uwosh/course-combine-api/pkg/response"
)

type combineWorkflow interface {
	Start(ctx context.Context, requester models.Requester) (*session.WorkflowContext, error)
	SelectSemester(ctx context.Context, workflowID string, term semester.Term, year int) (*session.WorkflowContext, error)
	SectionChoices(ctx context.Context, workflowID string) (*session.WorkflowContext, *service.SectionChoices, error)
	AddSection(ctx context.Context, workflowID string, fields service.SectionFields) (*session.WorkflowContext, *models.Section, error)
	SubmitSelection(ctx context.Context, workflowID string, sectionIDs []int64, baseID int64) (*session.WorkflowContext, error)
	ConfirmReview(ctx context.Context, workflowID string) (*session.WorkflowContext, error)
	Abandon(ctx context.Context, workflowID string) error
}

// CombineHandler exposes the combine workflow steps.
type CombineHandler struct {
	workflow combineWorkflow
}

// NewCombineHandler constructs CombineHandler.
func NewCombineHandler(workflow combineWorkflow) *CombineHandler {
	return &CombineHandler{workflow: workflow}
}

func workflowResponse(wc *session.WorkflowContext) dto.WorkflowResponse {
	return dto.WorkflowResponse{
		WorkflowID: wc.ID,
		State:      string(wc.State),
		Semester:   string(wc.Semester),
	}
}

// SelectSemester godoc
// @Summary Scope the workflow to one semester
// @Tags Combine
// @Accept json
// @Produce json
// @Param payload body dto.SelectSemesterRequest true "Term and year"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /combine/semester [post]
func (h *CombineHandler) SelectSemester(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SelectSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	term, err := semester.ParseTerm(req.Term)
	if err != nil {
		response.Error(c, err)
		return
	}

	wc, err := h.workflow.SelectSemester(c.Request.Context(), claims.WorkflowID, term, req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workflowResponse(wc))
}

// SectionChoices godoc
// @Summary List pickable sections for the scoped semester
// @Tags Combine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /combine/sections [get]
func (h *CombineHandler) SectionChoices(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	wc, choices, err := h.workflow.SectionChoices(c.Request.Context(), claims.WorkflowID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ChoicesResponse{
		WorkflowResponse: workflowResponse(wc),
		Selection:        choices.Selection,
		Base:             choices.Base,
	})
}

// AddSection godoc
// @Summary Add one more section by its identifying fields
// @Tags Combine
// @Accept json
// @Produce json
// @Param payload body dto.AddSectionRequest true "Section fields"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /combine/sections [post]
func (h *CombineHandler) AddSection(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	fields := service.SectionFields{
		SessionLength: req.SessionLength,
		Subject:       req.Subject,
		CatalogNumber: req.CatalogNumber,
		Section:       req.Section,
		ClassNumber:   req.ClassNumber,
	}

	wc, added, err := h.workflow.AddSection(c.Request.Context(), claims.WorkflowID, fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.AddSectionResponse{
		WorkflowResponse: workflowResponse(wc),
		Added:            *added,
	})
}

// SubmitSelection godoc
// @Summary Submit the chosen sections and the base section
// @Tags Combine
// @Accept json
// @Produce json
// @Param payload body dto.SubmitSelectionRequest true "Chosen section ids and base id"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /combine/selection [post]
func (h *CombineHandler) SubmitSelection(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	wc, err := h.workflow.SubmitSelection(c.Request.Context(), claims.WorkflowID, req.SectionIDs, req.BaseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SelectionResponse{
		WorkflowResponse: workflowResponse(wc),
		Selection:        wc.Selection,
		RequiresReview:   wc.State == session.StatePendingReview,
	})
}

// ConfirmReview godoc
// @Summary Acknowledge the merge set and confirm the combination
// @Tags Combine
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /combine/confirm [post]
func (h *CombineHandler) ConfirmReview(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	wc, err := h.workflow.ConfirmReview(c.Request.Context(), claims.WorkflowID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SelectionResponse{
		WorkflowResponse: workflowResponse(wc),
		Selection:        wc.Selection,
		RequiresReview:   false,
	})
}

// Abandon godoc
// @Summary Abandon the combine workflow
// @Tags Combine
// @Success 204 {object} nil
// @Router /combine [delete]
func (h *CombineHandler) Abandon(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.workflow.Abandon(c.Request.Context(), claims.WorkflowID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
