package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
	"github.com/uwosh/course-combine-api/pkg/jobs"
)

const noticeJobType = "combine_confirmation"

// Notice is the composed confirmation message handed to the delivery
// collaborator.
type Notice struct {
	Subject    string
	Recipients []string
	TextBody   string
	HTMLBody   string
}

// Sender delivers a composed notice. The concrete mail transport is an
// external collaborator.
type Sender interface {
	Send(ctx context.Context, notice Notice) error
}

// LogSender records notices instead of delivering them. Default sender for
// development.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, notice Notice) error {
	s.Logger.Info("confirmation notice",
		zap.String("subject", notice.Subject),
		zap.Strings("recipients", notice.Recipients),
		zap.String("body", notice.TextBody))
	return nil
}

// NotificationService composes the combine-confirmation notice for a
// finished selection and dispatches delivery asynchronously with retries.
type NotificationService struct {
	mail   config.MailConfig
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService constructs the service and its delivery queue.
func NewNotificationService(sender Sender, mail config.MailConfig, notify config.NotifyConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = &LogSender{Logger: logger}
	}

	handler := func(ctx context.Context, job jobs.Job) error {
		notice, ok := job.Payload.(Notice)
		if !ok {
			logger.Error("dropping job with unexpected payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
			return nil
		}
		return sender.Send(ctx, notice)
	}

	queue := jobs.NewQueue("notifications", handler, jobs.QueueConfig{
		Workers:    notify.Workers,
		MaxRetries: notify.MaxRetries,
		RetryDelay: notify.RetryDelay,
		Logger:     logger,
	})

	return &NotificationService{mail: mail, queue: queue, logger: logger}
}

// Start begins delivery workers.
func (s *NotificationService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop drains delivery workers.
func (s *NotificationService) Stop() { s.queue.Stop() }

// Confirmed enqueues the confirmation notice for a confirmed selection.
func (s *NotificationService) Confirmed(_ context.Context, requester models.Requester, selection models.Selection) error {
	notice := s.compose(requester, selection)
	err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: noticeJobType, Payload: notice})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue confirmation notice")
	}
	return nil
}

func (s *NotificationService) compose(requester models.Requester, selection models.Selection) Notice {
	recipients := []string{s.mail.CombineMailbox}
	if requester.UniqueName != "" {
		recipients = append(recipients, requester.UniqueName+"@"+s.mail.EmailDomain)
	}

	return Notice{
		Subject:    "Course Combine Confirmation",
		Recipients: recipients,
		TextBody:   s.composeText(requester, selection),
		HTMLBody:   s.composeHTML(requester, selection),
	}
}

func (s *NotificationService) composeText(requester models.Requester, selection models.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s %s,\n", requester.FirstName, requester.LastName)
	fmt.Fprintf(&b, "You have asked to have the following courses combined into %s, %s:\n\n", selection.Base.Label, selection.Base.Name)
	b.WriteString("Course Name\t(Course Code)\n")
	for _, section := range selection.MergeSet {
		fmt.Fprintf(&b, "%s\t(%s)\n", section.Name, section.Code)
	}
	fmt.Fprintf(&b, "\nIf this is incorrect, please contact our D2L site administrator at %s.", s.mail.SiteAdmin)
	return b.String()
}

func (s *NotificationService) composeHTML(requester models.Requester, selection models.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s %s,</p>", requester.FirstName, requester.LastName)
	fmt.Fprintf(&b, "<p>You have asked to have the following courses combined into %s, %s:</p>", selection.Base.Label, selection.Base.Name)
	b.WriteString("<table><thead><tr><th>Course Name</th><th>(Course Code)</th></tr></thead><tbody>")
	for _, section := range selection.MergeSet {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>(%s)</td></tr>", section.Name, section.Code)
	}
	b.WriteString("</tbody></table>")
	fmt.Fprintf(&b, "<p>If this is incorrect, please contact our D2L site administrator at %s.</p>", s.mail.SiteAdmin)
	return b.String()
}
