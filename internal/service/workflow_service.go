package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uwosh/course-combine-api/internal/directory"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
	"github.com/uwosh/course-combine-api/internal/session"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

type directoryBuilder interface {
	BuildDirectory(ctx context.Context, userID string) (*directory.Directory, error)
}

type sectionResolver interface {
	Resolve(ctx context.Context, fields SectionFields, sem semester.Code) (*models.Section, error)
}

type confirmationNotifier interface {
	Confirmed(ctx context.Context, requester models.Requester, selection models.Selection) error
}

type semesterEncoder interface {
	Encode(term semester.Term, year int) (semester.Code, error)
}

// SectionChoices are the two option lists for the sections screen.
type SectionChoices struct {
	Selection []directory.Choice `json:"selection"`
	Base      []directory.Choice `json:"base"`
}

// CombineWorkflowService is the state machine driving one combine request:
// pick a semester, pick sections and a base, optionally pull in one more
// section, review when the base was not among the picked sections, confirm.
// Each workflow context is owned by a single user session and threaded
// through the session store between steps.
type CombineWorkflowService struct {
	catalog  directoryBuilder
	lookup   sectionResolver
	notifier confirmationNotifier
	codec    semesterEncoder
	store    session.Store
	metrics  *MetricsService
	lmsHost  string
	logger   *zap.Logger
}

// NewCombineWorkflowService constructs CombineWorkflowService.
func NewCombineWorkflowService(catalog directoryBuilder, lookup sectionResolver, notifier confirmationNotifier, codec semesterEncoder, store session.Store, metrics *MetricsService, lmsHost string, logger *zap.Logger) *CombineWorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombineWorkflowService{
		catalog:  catalog,
		lookup:   lookup,
		notifier: notifier,
		codec:    codec,
		store:    store,
		metrics:  metrics,
		lmsHost:  lmsHost,
		logger:   logger,
	}
}

// Start aggregates the requester's sections and opens a fresh workflow
// context. A failed aggregation opens nothing: no partial directory is ever
// exposed.
func (s *CombineWorkflowService) Start(ctx context.Context, requester models.Requester) (*session.WorkflowContext, error) {
	dir, err := s.catalog.BuildDirectory(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}

	wc := &session.WorkflowContext{
		ID:        uuid.NewString(),
		Requester: requester,
		State:     session.StateSemesterUnselected,
		Directory: dir,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, wc); err != nil {
		return nil, err
	}

	s.metrics.WorkflowStarted()
	s.logger.Info("workflow started",
		zap.String("workflow_id", wc.ID),
		zap.String("user_id", requester.UserID),
		zap.Int("semesters", len(dir.Semesters())))
	return wc, nil
}

// Get loads a live workflow context.
func (s *CombineWorkflowService) Get(ctx context.Context, workflowID string) (*session.WorkflowContext, error) {
	return s.store.Load(ctx, workflowID)
}

// SelectSemester encodes the chosen term and year and scopes the workflow
// to that semester. A semester with no sections is a normal outcome: the
// state stays where it was and the caller may pick again. Any prior
// semester scope and selection are cleared on success.
func (s *CombineWorkflowService) SelectSemester(ctx context.Context, workflowID string, term semester.Term, year int) (*session.WorkflowContext, error) {
	wc, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wc.State == session.StateConfirmed {
		return nil, appErrors.ErrWorkflowState
	}

	code, err := s.codec.Encode(term, year)
	if err != nil {
		return nil, err
	}

	if !wc.Directory.HasBucket(code) {
		return nil, appErrors.ErrNoSectionsForSemester
	}

	wc.Semester = code
	wc.Selection = nil
	wc.State = session.StateSemesterSelected
	if err := s.store.Save(ctx, wc); err != nil {
		return nil, err
	}
	return wc, nil
}

// SectionChoices enters the sections screen for the scoped semester and
// returns the pickable options. The base options deep link into the LMS.
func (s *CombineWorkflowService) SectionChoices(ctx context.Context, workflowID string) (*session.WorkflowContext, *SectionChoices, error) {
	wc, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return nil, nil, err
	}

	switch wc.State {
	case session.StateSemesterSelected, session.StateSectionsPending, session.StatePendingReview:
	default:
		return nil, nil, appErrors.ErrWorkflowState
	}

	if wc.State != session.StateSectionsPending {
		wc.State = session.StateSectionsPending
		wc.Selection = nil
		if err := s.store.Save(ctx, wc); err != nil {
			return nil, nil, err
		}
	}

	choices := &SectionChoices{
		Selection: wc.Directory.ChoicesForSelection(wc.Semester),
		Base:      wc.Directory.ChoicesForBase(wc.Semester, s.lmsHost),
	}
	return wc, choices, nil
}

// AddSection resolves one more section from the user-supplied fields and
// inserts it into the scoped semester's bucket, so it appears in the next
// choice listing. The workflow stays on the sections screen.
func (s *CombineWorkflowService) AddSection(ctx context.Context, workflowID string, fields SectionFields) (*session.WorkflowContext, *models.Section, error) {
	wc, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return nil, nil, err
	}
	if wc.State != session.StateSectionsPending {
		return nil, nil, appErrors.ErrWorkflowState
	}

	section, err := s.lookup.Resolve(ctx, fields, wc.Semester)
	if err != nil {
		return nil, nil, err
	}

	wc.Directory.Insert(wc.Semester, *section)
	if err := s.store.Save(ctx, wc); err != nil {
		return nil, nil, err
	}
	return wc, section, nil
}

// SubmitSelection resolves the picked section ids and the base id against
// the semester's bucket and builds the Selection. When the base already
// appears among the picked sections the workflow confirms immediately;
// otherwise it parks in review so the user can acknowledge the full merge
// set. Too few distinct sections leaves the state untouched.
func (s *CombineWorkflowService) SubmitSelection(ctx context.Context, workflowID string, sectionIDs []int64, baseID int64) (*session.WorkflowContext, error) {
	wc, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	switch wc.State {
	case session.StateSectionsPending, session.StatePendingReview:
	default:
		return nil, appErrors.ErrWorkflowState
	}

	base, ok := wc.Directory.Find(wc.Semester, baseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidSectionDetails, "the base course is not among this semester's sections")
	}

	seen := make(map[int64]struct{}, len(sectionIDs))
	chosen := make([]models.Section, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		section, ok := wc.Directory.Find(wc.Semester, id)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidSectionDetails, "a selected course is not among this semester's sections")
		}
		chosen = append(chosen, section)
	}

	mergeSet := chosen
	if _, inChosen := seen[base.ID]; !inChosen {
		mergeSet = append(append([]models.Section{}, chosen...), base)
	}
	if len(mergeSet) < 2 {
		return nil, appErrors.ErrTooFewSections
	}

	wc.Selection = &models.Selection{
		Semester: wc.Semester,
		Chosen:   chosen,
		Base:     base,
		MergeSet: mergeSet,
	}

	if wc.Selection.BaseInChosen() {
		if err := s.finalize(ctx, wc); err != nil {
			return nil, err
		}
		return wc, nil
	}

	wc.State = session.StatePendingReview
	if err := s.store.Save(ctx, wc); err != nil {
		return nil, err
	}
	return wc, nil
}

// ConfirmReview acknowledges the merge set presented during review and
// confirms the workflow.
func (s *CombineWorkflowService) ConfirmReview(ctx context.Context, workflowID string) (*session.WorkflowContext, error) {
	wc, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wc.State != session.StatePendingReview || wc.Selection == nil {
		return nil, appErrors.ErrWorkflowState
	}

	if err := s.finalize(ctx, wc); err != nil {
		return nil, err
	}
	return wc, nil
}

// Abandon drops a workflow before confirmation. Nothing external needs
// releasing; the context is simply discarded.
func (s *CombineWorkflowService) Abandon(ctx context.Context, workflowID string) error {
	if _, err := s.store.Load(ctx, workflowID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, workflowID); err != nil {
		return err
	}
	s.metrics.WorkflowFinished()
	return nil
}

// finalize hands the finished selection to the notification collaborator
// exactly once and discards the context. The workflow instance is not
// reusable afterwards; a new combination starts a new workflow.
func (s *CombineWorkflowService) finalize(ctx context.Context, wc *session.WorkflowContext) error {
	if err := s.notifier.Confirmed(ctx, wc.Requester, *wc.Selection); err != nil {
		return err
	}

	wc.State = session.StateConfirmed
	if err := s.store.Delete(ctx, wc.ID); err != nil {
		s.logger.Warn("failed to discard confirmed workflow", zap.String("workflow_id", wc.ID), zap.Error(err))
	}
	s.metrics.WorkflowFinished()

	s.logger.Info("workflow confirmed",
		zap.String("workflow_id", wc.ID),
		zap.String("user_id", wc.Requester.UserID),
		zap.String("semester", string(wc.Semester)),
		zap.Int("merge_set", len(wc.Selection.MergeSet)))
	return nil
}
