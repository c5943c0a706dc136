package routes

import (
	"net/http"

	"github.com/guardline/guardline/internal/app"
	"github.com/guardline/guardline/internal/handler"
	"github.com/guardline/guardline/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	contact := handler.NewContactHandler(app.ContactService)
	dashboard := handler.NewDashboardHandler(app.ContactService)
	sos := handler.NewSosHandler(app.SosService)
	voiceNote := handler.NewVoiceNoteHandler(app.VoiceNoteService)

	mux := http.NewServeMux()

	// Accounts & sessions
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("POST /logout", auth.Logout)

	// Dashboard summary
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Summary))

	// Emergency contacts
	mux.HandleFunc("POST /add-contact", middleware.RequireAuth(contact.Add))
	mux.HandleFunc("POST /delete-contact/{id}", middleware.RequireAuth(contact.Delete))
	mux.HandleFunc("GET /api/contacts", middleware.RequireAuth(contact.List))

	// SOS alerts
	mux.HandleFunc("POST /sos", middleware.RequireAuth(sos.Trigger))
	mux.HandleFunc("GET /api/sos-alerts", middleware.RequireAuth(sos.List))

	// Voice notes
	mux.HandleFunc("POST /upload-voice-note", middleware.RequireAuth(voiceNote.Upload))
	mux.HandleFunc("GET /get-voice-notes", middleware.RequireAuth(voiceNote.List))
	mux.HandleFunc("GET /play-voice-note/{id}", middleware.RequireAuth(voiceNote.Play))
	mux.HandleFunc("POST /delete-voice-note/{id}", middleware.RequireAuth(voiceNote.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
