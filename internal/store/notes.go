package store

import (
	"context"
	"database/sql"
	"fmt"

	"sentinel-service/internal/models"
)

// CreateNote creates a new note
func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (note_text)
		VALUES ($1)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, note, query, note.NoteText)
}

// GetNotes retrieves all notes, newest first
func (s *Store) GetNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.SelectContext(ctx, &notes, "SELECT * FROM notes ORDER BY created_at DESC")
	return notes, err
}

// UpdateNote updates the text of a note
func (s *Store) UpdateNote(ctx context.Context, note *models.Note) error {
	err := s.db.GetContext(ctx, &note.UpdatedAt,
		"UPDATE notes SET note_text = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at",
		note.NoteText, note.ID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("note %s: %w", note.ID, ErrNotFound)
	}
	return err
}

// DeleteNote removes a note
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", noteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("note %s: %w", noteID, ErrNotFound)
	}
	return nil
}
