package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/guardline/guardline/internal/ctxkeys"
	"github.com/guardline/guardline/internal/repository"
	"github.com/guardline/guardline/internal/service"
)

// maxUploadSize bounds the multipart form held in memory during upload.
const maxUploadSize = 32 << 20 // 32 MB

type VoiceNoteHandler struct {
	voiceNoteService *service.VoiceNoteService
}

func NewVoiceNoteHandler(voiceNoteService *service.VoiceNoteService) *VoiceNoteHandler {
	return &VoiceNoteHandler{voiceNoteService: voiceNoteService}
}

// Upload accepts a multipart audio file in the voice_file field.
func (h *VoiceNoteHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	file, header, err := r.FormFile("voice_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	note, err := h.voiceNoteService.Upload(user.ID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFilename):
			writeError(w, http.StatusBadRequest, "No file selected")
		case errors.Is(err, service.ErrUnsupportedFormat):
			writeError(w, http.StatusUnsupportedMediaType, "Invalid audio file format. Please use mp3, wav, ogg, m4a, aac, or webm")
		default:
			slog.Error("voice note upload failed", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Failed to upload voice note")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Voice note uploaded successfully",
		"filename": note.Filename,
		"id":       note.ID,
	})
}

type voiceNoteJSON struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the session user's voice note metadata, newest first.
func (h *VoiceNoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	notes, err := h.voiceNoteService.List(user.ID)
	if err != nil {
		slog.Error("failed to list voice notes", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load voice notes")
		return
	}

	out := make([]voiceNoteJSON, 0, len(notes))
	for _, n := range notes {
		out = append(out, voiceNoteJSON{
			ID:        n.ID,
			Filename:  n.Filename,
			CreatedAt: n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"voice_notes": out})
}

// Play streams the audio blob in fixed-size chunks.
func (h *VoiceNoteHandler) Play(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	stream, err := h.voiceNoteService.Stream(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "Voice note not found")
			return
		}
		slog.Error("failed to open voice note", "error", err, "user_id", user.ID, "note_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to serve voice note")
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", stream.MimeType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, _ := w.(http.Flusher)
	for {
		chunk, err := stream.Next()
		if err != nil {
			if err != io.EOF {
				// Headers are gone; all we can do is log and stop.
				slog.Error("voice note stream aborted", "error", err, "note_id", id)
			}
			return
		}

		_, err = w.Write(chunk)
		if err != nil {
			// Client went away mid-stream.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Delete removes the voice note blob and its metadata row.
func (h *VoiceNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	err := h.voiceNoteService.Delete(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "Voice note not found")
			return
		}
		slog.Error("failed to delete voice note", "error", err, "user_id", user.ID, "note_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete voice note")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Voice note deleted successfully",
	})
}
