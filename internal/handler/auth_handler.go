package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/uwosh/course-combine-api/internal/dto"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/service"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
	"github.com/uwosh/course-combine-api/pkg/response"
)

// AuthHandler opens workflow sessions for identities established by the
// external LMS sign-in collaborator.
type AuthHandler struct {
	workflow combineWorkflow
	tokens   *service.TokenService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(workflow combineWorkflow, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{workflow: workflow, tokens: tokens}
}

// StartSession godoc
// @Summary Open a combine workflow session
// @Description Aggregates the instructor's sections from the LMS and mints a session token
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.StartSessionRequest true "Signed-in identity"
// @Success 201 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /auth/callback [post]
func (h *AuthHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	requester := models.Requester{
		UserID:     req.UserID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		UniqueName: req.UniqueName,
	}

	wc, err := h.workflow.Start(c.Request.Context(), requester)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.tokens.Mint(requester, wc.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	semesters := make([]string, 0, len(wc.Directory.Semesters()))
	for _, code := range wc.Directory.Semesters() {
		semesters = append(semesters, string(code))
	}
	sort.Strings(semesters)

	response.Created(c, dto.SessionResponse{
		Token:      token,
		WorkflowID: wc.ID,
		State:      string(wc.State),
		Semesters:  semesters,
	})
}
