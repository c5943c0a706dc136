package handler

import (
	"log/slog"
	"net/http"

	"github.com/guardline/guardline/internal/ctxkeys"
	"github.com/guardline/guardline/internal/service"
)

type DashboardHandler struct {
	contactService *service.ContactService
}

func NewDashboardHandler(contactService *service.ContactService) *DashboardHandler {
	return &DashboardHandler{contactService: contactService}
}

// Summary returns the session user's display name and contact count.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	count, err := h.contactService.Count(user.ID)
	if err != nil {
		slog.Error("failed to count contacts", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":          user.FullName(),
		"email":         user.Email,
		"contact_count": count,
	})
}
