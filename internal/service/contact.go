package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guardline/guardline/internal/model"
	"github.com/guardline/guardline/internal/repository"
	"github.com/guardline/guardline/internal/validation"
)

var (
	ErrContactFieldsMissing = errors.New("name and phone number are required")
	ErrInvalidPhone         = errors.New("invalid phone number")
)

type ContactService struct {
	contactRepository repository.ContactRepository
}

func NewContactService(contactRepository repository.ContactRepository) *ContactService {
	return &ContactService{contactRepository: contactRepository}
}

// List returns the user's emergency contacts, newest first.
func (s *ContactService) List(userID string) ([]*model.Contact, error) {
	return s.contactRepository.ByUser(userID)
}

func (s *ContactService) Count(userID string) (int, error) {
	return s.contactRepository.CountByUser(userID)
}

func (s *ContactService) Create(userID, name, phone, relation string) (*model.Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" || phone == "" {
		return nil, ErrContactFieldsMissing
	}

	normalized, err := validation.NormalizePhone(phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPhone, err)
	}

	contact := &model.Contact{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Phone:     normalized,
		Relation:  strings.TrimSpace(relation),
		CreatedAt: time.Now(),
	}

	err = s.contactRepository.Create(contact)
	if err != nil {
		return nil, err
	}

	slog.Info("contact added", "user_id", userID, "contact_id", contact.ID)
	return contact, nil
}

// Delete removes a contact only when it belongs to the given user.
func (s *ContactService) Delete(id, userID string) error {
	return s.contactRepository.Delete(id, userID)
}
