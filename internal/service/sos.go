package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/guardline/guardline/internal/model"
	"github.com/guardline/guardline/internal/notify"
	"github.com/guardline/guardline/internal/repository"
)

const (
	defaultSosLocation = "Location not available"
	defaultSosMessage  = "Emergency SOS triggered"
)

type SosService struct {
	alertRepository   repository.SosAlertRepository
	contactRepository repository.ContactRepository
	notifier          notify.Notifier
}

func NewSosService(alertRepository repository.SosAlertRepository, contactRepository repository.ContactRepository, notifier notify.Notifier) *SosService {
	return &SosService{
		alertRepository:   alertRepository,
		contactRepository: contactRepository,
		notifier:          notifier,
	}
}

// Trigger records an SOS alert and hands the user's contacts to the
// notifier. It returns the alert and the number of contacts reached.
func (s *SosService) Trigger(userID, location, message string) (*model.SosAlert, int, error) {
	if location == "" {
		location = defaultSosLocation
	}
	if message == "" {
		message = defaultSosMessage
	}

	alert := &model.SosAlert{
		ID:        uuid.New().String(),
		UserID:    userID,
		Location:  location,
		Message:   message,
		Status:    model.SosStatusActive,
		CreatedAt: time.Now(),
	}

	err := s.alertRepository.Create(alert)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to save alert: %w", err)
	}

	contacts, err := s.contactRepository.ByUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load contacts: %w", err)
	}

	err = s.notifier.NotifyContacts(alert, contacts)
	if err != nil {
		// The alert row is already durable; dispatch failure is not fatal.
		slog.Warn("sos notification failed", "error", err, "alert_id", alert.ID)
	}

	return alert, len(contacts), nil
}

// ListByUser returns the user's alert history, newest first.
func (s *SosService) ListByUser(userID string) ([]*model.SosAlert, error) {
	return s.alertRepository.ByUser(userID)
}
