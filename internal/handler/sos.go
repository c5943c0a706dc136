package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/guardline/guardline/internal/ctxkeys"
	"github.com/guardline/guardline/internal/service"
)

type SosHandler struct {
	sosService *service.SosService
}

func NewSosHandler(sosService *service.SosService) *SosHandler {
	return &SosHandler{sosService: sosService}
}

// Trigger records an SOS alert and reports how many emergency contacts
// were notionally alerted.
func (h *SosHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	location := r.FormValue("location")
	message := r.FormValue("message")

	alert, contactCount, err := h.sosService.Trigger(user.ID, location, message)
	if err != nil {
		slog.Error("failed to trigger sos", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to send SOS alert")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"alert_id":         alert.ID,
		"contacts_alerted": contactCount,
	})
}

type sosAlertJSON struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the session user's alert history, newest first.
func (h *SosHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	alerts, err := h.sosService.ListByUser(user.ID)
	if err != nil {
		slog.Error("failed to list sos alerts", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load alerts")
		return
	}

	out := make([]sosAlertJSON, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, sosAlertJSON{
			ID:        a.ID,
			Location:  a.Location,
			Message:   a.Message,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"sos_alerts": out})
}
