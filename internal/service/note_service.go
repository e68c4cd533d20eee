package service

import (
	"context"
	"fmt"
	"strings"

	"sentinel-service/internal/models"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"

	"go.uber.org/zap"
)

// NoteService handles free-form notes
type NoteService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(store *store.Store) *NoteService {
	return &NoteService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// NoteRequest represents a request to create or update a note
type NoteRequest struct {
	NoteText string `json:"note_text" binding:"required"`
}

// CreateNote saves a new note
func (ns *NoteService) CreateNote(ctx context.Context, req *NoteRequest) (*models.Note, error) {
	text := strings.TrimSpace(req.NoteText)
	if text == "" {
		return nil, fmt.Errorf("note text is required")
	}

	note := &models.Note{NoteText: text}
	if err := ns.store.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	ns.logger.Info("Note created", zap.String("note_id", note.ID))
	return note, nil
}

// ListNotes retrieves all notes, newest first
func (ns *NoteService) ListNotes(ctx context.Context) ([]models.Note, error) {
	return ns.store.GetNotes(ctx)
}

// UpdateNote edits a note
func (ns *NoteService) UpdateNote(ctx context.Context, noteID string, req *NoteRequest) (*models.Note, error) {
	text := strings.TrimSpace(req.NoteText)
	if text == "" {
		return nil, fmt.Errorf("note text is required")
	}

	note := &models.Note{ID: noteID, NoteText: text}
	if err := ns.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note
func (ns *NoteService) DeleteNote(ctx context.Context, noteID string) error {
	return ns.store.DeleteNote(ctx, noteID)
}
