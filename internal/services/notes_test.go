package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/pocket-notes/internal/kv"
	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/sbilibin2017/pocket-notes/internal/repositories"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestNoteService(t *testing.T, writer KafkaWriter) *NoteService {
	t.Helper()
	clock := int64(1_000)
	svc := NewNoteService(repositories.NewNoteRepository(kv.NewMemoryStore()), writer, language.English)
	svc.now = func() int64 {
		clock++
		return clock
	}
	return svc
}

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t, nil)

	n, err := svc.Create(ctx, "alice", models.NoteDraft{Title: "", Body: " hi "})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Untitled", n.Title)
	assert.Equal(t, "hi", n.Body)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	stored, err := svc.Get(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored)

	_, err = svc.Create(ctx, "alice", models.NoteDraft{Title: "  ", Body: "\n"})
	assert.ErrorIs(t, err, ErrEmptyNote)

	all, err := svc.List(ctx, "alice", models.NoteQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t, nil)

	first, err := svc.Create(ctx, "alice", models.NoteDraft{Title: "first"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "alice", models.NoteDraft{Title: "second", ImageURI: "/img/1.png"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", first.ID, models.NoteDraft{Title: "first, edited", Body: "more"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt, "creation time is carried forward")
	assert.Greater(t, updated.UpdatedAt, first.UpdatedAt)
	assert.Empty(t, updated.ImageURI)

	notes, err := svc.notes.ListNotes(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, []string{notes[0].ID, notes[1].ID})
	assert.Equal(t, updated, notes[1])

	_, err = svc.Update(ctx, "alice", "missing", models.NoteDraft{Title: "x"})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, err = svc.Update(ctx, "alice", first.ID, models.NoteDraft{})
	assert.ErrorIs(t, err, ErrEmptyNote)

	_, err = svc.Update(ctx, "bob", first.ID, models.NoteDraft{Title: "steal"})
	assert.ErrorIs(t, err, ErrNoteNotFound, "notes are scoped to their owner")
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t, nil)

	n, err := svc.Create(ctx, "alice", models.NoteDraft{Title: "bye"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", n.ID))
	require.NoError(t, svc.Delete(ctx, "alice", n.ID))

	_, err = svc.Get(ctx, "alice", n.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t, nil)

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, "alice", models.NoteDraft{Title: title})
		require.NoError(t, err)
	}
	// Editing "one" makes it the most recently updated.
	all, _ := svc.notes.ListNotes(ctx, "alice")
	_, err := svc.Update(ctx, "alice", all[2].ID, models.NoteDraft{Title: "one"})
	require.NoError(t, err)

	notes, err := svc.List(ctx, "alice", models.NoteQuery{Sort: models.SortUpdatedDesc})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for i := 1; i < len(notes); i++ {
		assert.Greater(t, notes[i-1].UpdatedAt, notes[i].UpdatedAt)
	}
	assert.Equal(t, "one", notes[0].Title)

	found, err := svc.List(ctx, "alice", models.NoteQuery{Search: "TW", Sort: models.SortTitleAsc})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "two", found[0].Title)
}

func TestNoteService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockNoteStore(ctrl)
	writer := NewMockKafkaWriter(ctrl)
	svc := NewNoteService(store, writer, language.English)

	store.EXPECT().ListNotes(gomock.Any(), "alice").Return(nil, kv.ErrStorageUnavailable)
	_, err := svc.List(ctx, "alice", models.NoteQuery{})
	assert.ErrorIs(t, err, kv.ErrStorageUnavailable)

	store.EXPECT().AddNote(gomock.Any(), "alice", gomock.Any()).Return(kv.ErrStorageUnavailable)
	_, err = svc.Create(ctx, "alice", models.NoteDraft{Title: "t"})
	assert.ErrorIs(t, err, kv.ErrStorageUnavailable)

	store.EXPECT().DeleteNote(gomock.Any(), "alice", "n1").Return(false, kv.ErrStorageUnavailable)
	assert.ErrorIs(t, svc.Delete(ctx, "alice", "n1"), kv.ErrStorageUnavailable)
}

func TestNoteService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	svc := newTestNoteService(t, writer)

	var published []models.NoteEvent
	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			for _, m := range msgs {
				var evt models.NoteEvent
				require.NoError(t, json.Unmarshal(m.Value, &evt))
				assert.Equal(t, "alice", string(m.Key))
				published = append(published, evt)
			}
			return nil
		}).
		Times(2)
	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	n, err := svc.Create(ctx, "alice", models.NoteDraft{Title: "t"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "alice", n.ID, models.NoteDraft{Title: "t2"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, "alice", n.ID), "publish failures do not fail the operation")
	// No writer call is expected for ids that are already gone.
	assert.NoError(t, svc.Delete(ctx, "alice", n.ID))
	assert.NoError(t, svc.Delete(ctx, "alice", "no-such-id"))

	require.Len(t, published, 2)
	assert.Equal(t, models.NoteCreated, published[0].Operation)
	assert.Equal(t, models.NoteUpdated, published[1].Operation)
	assert.Equal(t, n.ID, published[1].NoteID)
	assert.NotEqual(t, published[0].EventID, published[1].EventID)
}

func TestNoteService_DeleteUnknownIDPublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockNoteStore(ctrl)
	writer := NewMockKafkaWriter(ctrl)
	svc := NewNoteService(store, writer, language.English)

	store.EXPECT().DeleteNote(gomock.Any(), "alice", "no-such-id").Return(false, nil)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Times(0)

	assert.NoError(t, svc.Delete(context.Background(), "alice", "no-such-id"))
}
