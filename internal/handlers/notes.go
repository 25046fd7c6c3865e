//go:generate mockgen -source=notes.go -destination=mock_notes.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/pocket-notes/internal/middlewares"
	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/sbilibin2017/pocket-notes/internal/services"
)

// NoteLister lists the owner's notes.
type NoteLister interface {
	List(ctx context.Context, owner string, query models.NoteQuery) ([]models.Note, error)
}

// NoteGetter reads one note.
type NoteGetter interface {
	Get(ctx context.Context, owner, id string) (models.Note, error)
}

// NoteCreator stores a new note.
type NoteCreator interface {
	Create(ctx context.Context, owner string, draft models.NoteDraft) (models.Note, error)
}

// NoteUpdater edits an existing note.
type NoteUpdater interface {
	Update(ctx context.Context, owner, id string, draft models.NoteDraft) (models.Note, error)
}

// NoteDeleter removes a note.
type NoteDeleter interface {
	Delete(ctx context.Context, owner, id string) error
}

// NoteRequest is the editable part of a note
// swagger:model NoteRequest
type NoteRequest struct {
	// Title, "Untitled" when blank
	// default: Groceries
	Title string `json:"title"`

	// Body text
	// default: milk, eggs
	Body string `json:"body"`

	// Path of an attached image, as returned by the image endpoints
	ImageURI string `json:"imageUri,omitempty"`
}

// NotesResponse wraps a list of notes
// swagger:model NotesResponse
type NotesResponse struct {
	Notes []models.Note `json:"notes"`
}

func (req NoteRequest) draft() models.NoteDraft {
	return models.NoteDraft{Title: req.Title, Body: req.Body, ImageURI: req.ImageURI}
}

func ownerFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middlewares.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, services.ErrNotLoggedIn)
	}
	return owner, ok
}

// NewListNotesHandler returns an HTTP handler listing the caller's notes.
// @Summary List notes
// @Description Notes of the logged in user, filtered by a case-insensitive search over title and body
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search text"
// @Param sort query string false "updatedDesc (default), updatedAsc, titleAsc, titleDesc"
// @Success 200 {object} handlers.NotesResponse
// @Failure 400 {object} handlers.ErrorResponse "Unknown sort option"
// @Failure 401 "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /notes [get]
func NewListNotesHandler(svc NoteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		query := models.NoteQuery{
			Search: r.URL.Query().Get("search"),
			Sort:   models.SortOption(r.URL.Query().Get("sort")),
		}
		if query.Sort != "" && !query.Sort.Valid() {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown sort option"})
			return
		}

		notes, err := svc.List(r.Context(), owner, query)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, NotesResponse{Notes: notes})
	}
}

// NewGetNoteHandler returns an HTTP handler reading one note.
// @Summary Get note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} models.Note
// @Failure 401 "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Note not found"
// @Router /notes/{id} [get]
func NewGetNoteHandler(svc NoteGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		note, err := svc.Get(r.Context(), owner, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, note)
	}
}

// NewCreateNoteHandler returns an HTTP handler creating a note.
// @Summary Create note
// @Description New notes are placed first in the collection
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param note body handlers.NoteRequest true "Note"
// @Success 201 {object} models.Note
// @Failure 400 {object} handlers.ErrorResponse "Invalid request / empty note"
// @Failure 401 "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /notes [post]
func NewCreateNoteHandler(svc NoteCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		var req NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		note, err := svc.Create(r.Context(), owner, req.draft())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, note)
	}
}

// NewUpdateNoteHandler returns an HTTP handler editing a note in place.
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param note body handlers.NoteRequest true "Note"
// @Success 200 {object} models.Note
// @Failure 400 {object} handlers.ErrorResponse "Invalid request / empty note"
// @Failure 401 "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Note not found"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /notes/{id} [put]
func NewUpdateNoteHandler(svc NoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		var req NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		note, err := svc.Update(r.Context(), owner, chi.URLParam(r, "id"), req.draft())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, note)
	}
}

// NewDeleteNoteHandler returns an HTTP handler deleting a note.
// @Summary Delete note
// @Description Deleting an unknown id succeeds
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 204 "Deleted"
// @Failure 401 "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /notes/{id} [delete]
func NewDeleteNoteHandler(svc NoteDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
