//go:generate mockgen -source=notes.go -destination=mock_notes.go -package=services

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/sbilibin2017/pocket-notes/internal/repositories"
	"github.com/segmentio/kafka-go"
	"golang.org/x/text/language"
)

var (
	// ErrEmptyNote is returned when both title and body are blank.
	ErrEmptyNote    = errors.New("note needs a title or body")
	ErrNoteNotFound = repositories.ErrNoteNotFound
)

// NoteStore defines per-owner note persistence.
type NoteStore interface {
	ListNotes(ctx context.Context, owner string) ([]models.Note, error)
	GetNote(ctx context.Context, owner, id string) (models.Note, error)
	AddNote(ctx context.Context, owner string, note models.Note) error
	UpdateNote(ctx context.Context, owner string, note models.Note) error
	DeleteNote(ctx context.Context, owner, id string) (bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NoteService implements note editing on top of a NoteStore and publishes
// a NoteEvent for every stored change.
type NoteService struct {
	notes       NoteStore
	kafkaWriter KafkaWriter
	locale      language.Tag
	now         func() int64
}

// NewNoteService creates a NoteService. kafkaWriter may be nil.
func NewNoteService(notes NoteStore, kafkaWriter KafkaWriter, locale language.Tag) *NoteService {
	return &NoteService{
		notes:       notes,
		kafkaWriter: kafkaWriter,
		locale:      locale,
		now:         models.NowMillis,
	}
}

// List returns the owner's notes matching query.Search, ordered by query.Sort.
func (s *NoteService) List(ctx context.Context, owner string, query models.NoteQuery) ([]models.Note, error) {
	notes, err := s.notes.ListNotes(ctx, owner)
	if err != nil {
		logger.Log.Errorw("failed to list notes", "owner", owner, "error", err)
		return nil, err
	}

	sortBy := query.Sort
	if sortBy == "" {
		sortBy = models.SortUpdatedDesc
	}

	notes = FilterNotes(notes, query.Search)
	SortNotes(notes, sortBy, s.locale)
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, owner, id string) (models.Note, error) {
	return s.notes.GetNote(ctx, owner, id)
}

// Create stores a new note built from draft at the front of the owner's collection.
func (s *NoteService) Create(ctx context.Context, owner string, draft models.NoteDraft) (models.Note, error) {
	title, body, err := cleanDraft(draft)
	if err != nil {
		return models.Note{}, err
	}

	now := s.now()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		ImageURI:  draft.ImageURI,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notes.AddNote(ctx, owner, note); err != nil {
		logger.Log.Errorw("failed to add note", "owner", owner, "error", err)
		return models.Note{}, err
	}

	s.publish(ctx, owner, note.ID, models.NoteCreated)
	return note, nil
}

// Update replaces the editable fields of an existing note, keeping its id and creation time.
func (s *NoteService) Update(ctx context.Context, owner, id string, draft models.NoteDraft) (models.Note, error) {
	title, body, err := cleanDraft(draft)
	if err != nil {
		return models.Note{}, err
	}

	old, err := s.notes.GetNote(ctx, owner, id)
	if err != nil {
		return models.Note{}, err
	}

	updated := old
	updated.Title = title
	updated.Body = body
	updated.ImageURI = draft.ImageURI
	updated.UpdatedAt = s.now()

	if err := s.notes.UpdateNote(ctx, owner, updated); err != nil {
		if !errors.Is(err, ErrNoteNotFound) {
			logger.Log.Errorw("failed to update note", "owner", owner, "id", id, "error", err)
		}
		return models.Note{}, err
	}

	s.publish(ctx, owner, id, models.NoteUpdated)
	return updated, nil
}

// Delete removes a note. Unknown ids are not an error.
func (s *NoteService) Delete(ctx context.Context, owner, id string) error {
	removed, err := s.notes.DeleteNote(ctx, owner, id)
	if err != nil {
		logger.Log.Errorw("failed to delete note", "owner", owner, "id", id, "error", err)
		return err
	}
	if !removed {
		return nil
	}

	s.publish(ctx, owner, id, models.NoteDeleted)
	return nil
}

// publish sends a NoteEvent to Kafka. Failures are logged only.
func (s *NoteService) publish(ctx context.Context, owner, noteID, op string) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "note_id", noteID, "operation", op)
		return
	}

	evt := models.NoteEvent{
		EventID:   uuid.NewString(),
		Timestamp: s.now(),
		Owner:     owner,
		NoteID:    noteID,
		Operation: op,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal note event", "event_id", evt.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(owner),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish note event to Kafka", "event_id", evt.EventID, "error", err)
	} else {
		logger.Log.Infow("Note event published to Kafka", "event_id", evt.EventID, "operation", op)
	}
}

func cleanDraft(draft models.NoteDraft) (title, body string, err error) {
	title = strings.TrimSpace(draft.Title)
	body = strings.TrimSpace(draft.Body)
	if title == "" && body == "" {
		return "", "", ErrEmptyNote
	}
	if title == "" {
		title = models.DefaultNoteTitle
	}
	return title, body, nil
}
