package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guardline/guardline/internal/model"
	"github.com/guardline/guardline/internal/repository"
	"github.com/guardline/guardline/internal/storage"
)

var (
	ErrEmptyFilename     = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("invalid audio file format, use mp3, wav, ogg, m4a, aac, or webm")
)

// chunkSize is the unit of incremental transmission for playback.
const chunkSize = 1024

var allowedExtensions = map[string]bool{
	"mp3":  true,
	"wav":  true,
	"ogg":  true,
	"m4a":  true,
	"aac":  true,
	"webm": true,
}

var mimeTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
	"webm": "audio/webm",
}

type VoiceNoteService struct {
	noteRepository repository.VoiceNoteRepository
	storage        storage.Storage
}

func NewVoiceNoteService(noteRepository repository.VoiceNoteRepository, storage storage.Storage) *VoiceNoteService {
	return &VoiceNoteService{
		noteRepository: noteRepository,
		storage:        storage,
	}
}

// Upload validates the filename, writes the audio blob to storage under a
// name derived from the owner and upload time, and records the metadata row.
func (s *VoiceNoteService) Upload(userID, filename string, r io.Reader) (*model.VoiceNote, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrEmptyFilename
	}

	ext := extension(filename)
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFormat
	}

	timestamp := time.Now().Format("20060102_150405")
	storagePath := path.Join("voice_notes", fmt.Sprintf("voice_note_%s_%s.%s", userID, timestamp, ext))

	err := s.storage.Save(storagePath, r)
	if err != nil {
		return nil, fmt.Errorf("failed to save voice note: %w", err)
	}

	note := &model.VoiceNote{
		ID:          uuid.New().String(),
		UserID:      userID,
		Filename:    filename,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	}

	err = s.noteRepository.Create(note)
	if err != nil {
		// Metadata insert failed; don't leave an orphaned blob behind.
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to clean up blob after insert failure", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create voice note record: %w", err)
	}

	slog.Info("voice note uploaded", "user_id", userID, "note_id", note.ID, "path", storagePath)
	return note, nil
}

// List returns the user's voice notes, newest first.
func (s *VoiceNoteService) List(userID string) ([]*model.VoiceNote, error) {
	return s.noteRepository.ByUser(userID)
}

// Stream opens the note's audio blob for chunked playback. A missing
// metadata row and a missing blob both report ErrNoteNotFound.
func (s *VoiceNoteService) Stream(noteID, userID string) (*AudioStream, error) {
	note, err := s.noteRepository.ByIDAndUser(noteID, userID)
	if err != nil {
		return nil, err
	}

	r, err := s.storage.Open(note.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, repository.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to open voice note: %w", err)
	}

	return &AudioStream{
		MimeType: mimeType(note.StoragePath),
		r:        r,
	}, nil
}

// Delete removes the blob (best effort; a missing blob is fine) and then the
// metadata row. Only the row removal decides success.
func (s *VoiceNoteService) Delete(noteID, userID string) error {
	note, err := s.noteRepository.ByIDAndUser(noteID, userID)
	if err != nil {
		return err
	}

	err = s.storage.Delete(note.StoragePath)
	if err != nil {
		slog.Warn("failed to delete voice note blob", "error", err, "path", note.StoragePath)
	}

	err = s.noteRepository.Delete(noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete voice note record: %w", err)
	}

	slog.Info("voice note deleted", "user_id", userID, "note_id", noteID)
	return nil
}

// AudioStream yields the audio blob as successive fixed-size chunks. It is
// finite and non-restartable; the handle is released on EOF, on a read
// error, or by Close.
type AudioStream struct {
	MimeType string

	r      io.ReadCloser
	closed bool
}

// Next returns the next chunk, at most chunkSize bytes. It returns io.EOF
// after the final chunk and closes the underlying handle.
func (a *AudioStream) Next() ([]byte, error) {
	if a.closed {
		return nil, io.EOF
	}

	buf := make([]byte, chunkSize)
	n, err := io.ReadFull(a.r, buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == io.ErrUnexpectedEOF || err == nil {
		err = io.EOF
	}

	a.Close()
	return nil, err
}

func (a *AudioStream) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.r.Close()
}

func extension(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	return strings.ToLower(ext)
}

func mimeType(storagePath string) string {
	mime, ok := mimeTypes[extension(storagePath)]
	if !ok {
		return "audio/mpeg"
	}
	return mime
}
