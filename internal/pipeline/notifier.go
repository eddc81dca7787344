package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/notifications"
	"github.com/efoncier/survey-lab/internal/users"
)

// Notifier records processing outcomes for users. Every failure here
// is log-only: a lost notification never disturbs page state, and the
// user existence re-check guards against accounts removed while their
// documents were in flight.
type Notifier struct {
	users         users.System
	notifications notifications.System
	logger        *slog.Logger
}

// NewNotifier creates a pipeline notifier.
func NewNotifier(usr users.System, sys notifications.System, logger *slog.Logger) *Notifier {
	return &Notifier{
		users:         usr,
		notifications: sys,
		logger:        logger.With("system", "pipeline.notifier"),
	}
}

// PageCompleted records a success notification for a terminal page.
func (n *Notifier) PageCompleted(ctx context.Context, userID, pageID uuid.UUID, sequence int, reportURL string) {
	n.notify(ctx, notifications.CreateCommand{
		UserID:    userID,
		Title:     "Page analysis complete",
		Message:   fmt.Sprintf("Page %d has been analyzed. The screening report is ready.", sequence),
		Severity:  notifications.SeveritySuccess,
		ResultID:  &pageID,
		ReportURL: &reportURL,
	})
}

// PageFailed records an error notification for a failed page.
func (n *Notifier) PageFailed(ctx context.Context, userID uuid.UUID, pageID *uuid.UUID, sequence int, reason string) {
	n.notify(ctx, notifications.CreateCommand{
		UserID:   userID,
		Title:    "Page analysis failed",
		Message:  fmt.Sprintf("Page %d could not be analyzed: %s", sequence, reason),
		Severity: notifications.SeverityError,
		ResultID: pageID,
	})
}

// DocumentFailed records an error notification for a document that
// never produced pages.
func (n *Notifier) DocumentFailed(ctx context.Context, userID uuid.UUID, filename, reason string) {
	n.notify(ctx, notifications.CreateCommand{
		UserID:   userID,
		Title:    "Document processing failed",
		Message:  fmt.Sprintf("%s could not be processed: %s", filename, reason),
		Severity: notifications.SeverityError,
	})
}

func (n *Notifier) notify(ctx context.Context, cmd notifications.CreateCommand) {
	exists, err := n.users.Exists(ctx, cmd.UserID)
	if err != nil {
		n.logger.Error("notification skipped, user check failed", "user_id", cmd.UserID, "error", err)
		return
	}
	if !exists {
		n.logger.Warn("notification skipped, user no longer exists", "user_id", cmd.UserID)
		return
	}

	if _, err := n.notifications.Create(ctx, cmd); err != nil {
		n.logger.Error("notification write failed", "user_id", cmd.UserID, "error", err)
	}
}
