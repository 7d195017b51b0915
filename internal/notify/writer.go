// Package notify centralizes notification fan-out. Handlers hand a filled-in
// Notification to the Writer and move on; delivery is best-effort and a
// failed write never aborts the action that triggered it.
package notify

import (
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/picnichub/memoryhub/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Writer appends notification records for a single recipient per event.
type Writer struct {
	notifications repositories.NotificationRepository
	log           *logrus.Logger
}

// NewWriter creates a new Writer
func NewWriter(notifications repositories.NotificationRepository, log *logrus.Logger) *Writer {
	return &Writer{notifications: notifications, log: log}
}

// Notify persists one notification unless it notifies its own sender or is
// missing a party. Errors are logged and swallowed.
func (w *Writer) Notify(n *models.Notification) {
	if !n.ShouldStore() {
		metrics.NotificationsSuppressed.Inc()
		return
	}
	if err := w.notifications.CreateNotification(n); err != nil {
		metrics.NotificationsFailed.Inc()
		w.log.WithError(err).WithFields(logrus.Fields{
			"type":      n.Type,
			"recipient": n.RecipientID,
			"sender":    n.SenderID,
		}).Warn("notification write failed")
		return
	}
	metrics.NotificationsWritten.Inc()
}

// NotifyAll fans an event out to many recipients, one row each. The sender
// is suppressed by the per-row check.
func (w *Writer) NotifyAll(recipientIDs []uint, template models.Notification) {
	for _, id := range recipientIDs {
		n := template
		n.RecipientID = id
		w.Notify(&n)
	}
}
