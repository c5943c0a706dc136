package notify

import (
	"log/slog"

	"github.com/guardline/guardline/internal/model"
)

// Notifier is the seam for dispatching an SOS alert to a user's emergency
// contacts. No real SMS/call dispatch exists; implementations decide what
// "notify" means.
type Notifier interface {
	NotifyContacts(alert *model.SosAlert, contacts []*model.Contact) error
}

// LogNotifier is the deliberate no-op dispatcher: it records that contacts
// would have been alerted and does nothing else.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyContacts(alert *model.SosAlert, contacts []*model.Contact) error {
	slog.Info("sos alert dispatched (no-op)",
		"alert_id", alert.ID,
		"user_id", alert.UserID,
		"contact_count", len(contacts),
	)
	return nil
}
