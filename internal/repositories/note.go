package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/models"
)

// ErrNoteNotFound is returned when an id is not in the owner's collection.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository keeps one ordered note collection per owner.
// Every mutation rewrites the owner's whole collection.
type NoteRepository struct {
	store KVStore
	locks *keyLocker
}

func NewNoteRepository(store KVStore) *NoteRepository {
	return &NoteRepository{
		store: store,
		locks: newKeyLocker(),
	}
}

func notesKey(owner string) string {
	return NotesKeyPrefix + owner
}

// ListNotes returns the owner's notes in storage order, newest created first.
func (r *NoteRepository) ListNotes(ctx context.Context, owner string) ([]models.Note, error) {
	notes, err := loadJSON[[]models.Note](ctx, r.store, notesKey(owner))
	if err != nil {
		return nil, fmt.Errorf("list notes of %s: %w", owner, err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNote returns a single note of the owner.
func (r *NoteRepository) GetNote(ctx context.Context, owner, id string) (models.Note, error) {
	notes, err := r.ListNotes(ctx, owner)
	if err != nil {
		return models.Note{}, err
	}
	if i := indexOf(notes, id); i >= 0 {
		return notes[i], nil
	}
	return models.Note{}, ErrNoteNotFound
}

// AddNote puts note at the front of the owner's collection.
// The id must not already be in the collection.
func (r *NoteRepository) AddNote(ctx context.Context, owner string, note models.Note) error {
	unlock := r.locks.lock(notesKey(owner))
	defer unlock()

	notes, err := r.ListNotes(ctx, owner)
	if err != nil {
		return err
	}

	note.Title = normalizeTitle(note.Title)
	notes = append([]models.Note{note}, notes...)

	if err := saveJSON(ctx, r.store, notesKey(owner), notes); err != nil {
		return fmt.Errorf("add note: %w", err)
	}
	logger.Log.Infow("note added", "owner", owner, "id", note.ID, "notes", len(notes))
	return nil
}

// UpdateNote replaces the note with the same id at its current position.
// A missing id leaves the collection untouched and returns ErrNoteNotFound.
func (r *NoteRepository) UpdateNote(ctx context.Context, owner string, note models.Note) error {
	unlock := r.locks.lock(notesKey(owner))
	defer unlock()

	notes, err := r.ListNotes(ctx, owner)
	if err != nil {
		return err
	}

	i := indexOf(notes, note.ID)
	if i < 0 {
		logger.Log.Infow("note to update not found", "owner", owner, "id", note.ID)
		return ErrNoteNotFound
	}

	note.Title = normalizeTitle(note.Title)
	notes[i] = note

	if err := saveJSON(ctx, r.store, notesKey(owner), notes); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	logger.Log.Infow("note updated", "owner", owner, "id", note.ID)
	return nil
}

// DeleteNote drops every note with id and reports whether any was removed.
// Deleting an unknown id is a no-op and writes nothing.
func (r *NoteRepository) DeleteNote(ctx context.Context, owner, id string) (bool, error) {
	unlock := r.locks.lock(notesKey(owner))
	defer unlock()

	notes, err := r.ListNotes(ctx, owner)
	if err != nil {
		return false, err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		logger.Log.Debugw("note to delete not found", "owner", owner, "id", id)
		return false, nil
	}

	if err := saveJSON(ctx, r.store, notesKey(owner), kept); err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	logger.Log.Infow("note deleted", "owner", owner, "id", id, "notes", len(kept))
	return true, nil
}

func indexOf(notes []models.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return models.DefaultNoteTitle
	}
	return title
}
