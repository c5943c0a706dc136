package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guardline/guardline/internal/ctxkeys"
	"github.com/guardline/guardline/internal/repository"
	"github.com/guardline/guardline/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	name := r.FormValue("name")
	phone := r.FormValue("phone")
	relation := r.FormValue("relation")

	_, err := h.contactService.Create(user.ID, name, phone, relation)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateContact):
			writeError(w, http.StatusConflict, "This phone number is already in your emergency contacts")
		case errors.Is(err, service.ErrContactFieldsMissing),
			errors.Is(err, service.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to add contact", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Failed to add contact")
		}
		return
	}

	http.Redirect(w, r, "/manage-contacts", http.StatusSeeOther)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	err := h.contactService.Delete(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		slog.Error("failed to delete contact", "error", err, "user_id", user.ID, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	http.Redirect(w, r, "/manage-contacts", http.StatusSeeOther)
}

type contactJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// List returns the session user's contacts as JSON, newest first.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	contacts, err := h.contactService.List(user.ID)
	if err != nil {
		slog.Error("failed to list contacts", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load contacts")
		return
	}

	out := make([]contactJSON, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactJSON{
			ID:       c.ID,
			Name:     c.Name,
			Phone:    c.Phone,
			Relation: c.Relation,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"contacts": out})
}
