package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/uwosh/course-combine-api/internal/directory"
	"github.com/uwosh/course-combine-api/internal/lms"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
)

type enrollmentLister interface {
	ListEnrollments(ctx context.Context, userID, bookmark string) (*lms.Page, error)
}

// CatalogService aggregates an instructor's sections from the LMS into a
// semester-keyed directory.
type CatalogService struct {
	lms     enrollmentLister
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(lister enrollmentLister, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{lms: lister, metrics: metrics, logger: logger}
}

// BuildDirectory drives the paginated enrollments listing to completion and
// folds every item into a fresh directory. Pages are fetched strictly in
// bookmark order, one at a time. Items whose code carries no valid semester
// key are skipped, not fatal; a failed fetch aborts the whole run and no
// partial directory is returned.
func (s *CatalogService) BuildDirectory(ctx context.Context, userID string) (*directory.Directory, error) {
	dir := directory.New()

	bookmark := ""
	for {
		page, err := s.lms.ListEnrollments(ctx, userID, bookmark)
		s.metrics.ObserveLMSFetch("list_enrollments", err)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			key, ok := semester.DeriveKey(item.Code)
			if !ok {
				s.logger.Debug("skipping org unit without a semester key",
					zap.Int64("org_unit_id", item.ID), zap.String("code", item.Code))
				continue
			}
			label, err := semester.ParseDisplayLabel(item.Code)
			if err != nil {
				s.logger.Debug("skipping org unit with a malformed code",
					zap.Int64("org_unit_id", item.ID), zap.String("code", item.Code))
				continue
			}
			dir.Insert(key, models.Section{ID: item.ID, Name: item.Name, Code: item.Code, Label: label})
		}

		if !page.HasMore {
			return dir, nil
		}
		bookmark = page.Bookmark
	}
}
