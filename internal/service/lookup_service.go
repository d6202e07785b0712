package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uwosh/course-combine-api/internal/lms"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

type orgUnitFinder interface {
	FindOrgUnitByCode(ctx context.Context, code string) ([]lms.OrgUnit, error)
}

// SectionFields are the user-supplied identifying parts of one section.
type SectionFields struct {
	SessionLength string `json:"session_length" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	CatalogNumber string `json:"catalog_number" validate:"required"`
	Section       string `json:"section" validate:"required"`
	ClassNumber   string `json:"class_number" validate:"required,numeric"`
}

// SectionLookupService resolves one section ad hoc by composing its
// org-unit code and asking the LMS for it. It never mutates the section
// directory; inserting a resolved section is the workflow's job.
type SectionLookupService struct {
	codec     *semester.Codec
	lms       orgUnitFinder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionLookupService constructs SectionLookupService.
func NewSectionLookupService(codec *semester.Codec, finder orgUnitFinder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SectionLookupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionLookupService{codec: codec, lms: finder, metrics: metrics, validator: validate, logger: logger}
}

// Resolve builds the org-unit code for the fields within the given semester
// and returns the first matching LMS item as a Section.
func (s *SectionLookupService) Resolve(ctx context.Context, fields SectionFields, sem semester.Code) (*models.Section, error) {
	if err := s.validator.Struct(fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidSectionDetails.Code, appErrors.ErrInvalidSectionDetails.Status, appErrors.ErrInvalidSectionDetails.Message)
	}

	code := s.codec.BuildSectionCode(sem, fields.SessionLength, fields.Subject, fields.CatalogNumber, fields.Section, fields.ClassNumber)

	units, err := s.lms.FindOrgUnitByCode(ctx, code)
	s.metrics.ObserveLMSFetch("find_org_unit", err)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, appErrors.ErrInvalidSectionDetails
	}

	unit := units[0]
	label, err := semester.ParseDisplayLabel(unit.Code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resolved ad hoc section", zap.Int64("org_unit_id", unit.ID), zap.String("code", unit.Code))
	return &models.Section{ID: unit.ID, Name: unit.Name, Code: unit.Code, Label: label}, nil
}
