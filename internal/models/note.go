package models

import "time"

// DefaultNoteTitle is stored when a note is saved with a blank title.
const DefaultNoteTitle = "Untitled"

// Note is a single entry of an owner's collection.
// Ownership is not embedded: a note belongs to the collection it is stored in.
type Note struct {
	ID        string `json:"id"`                 // Unique note identifier
	Title     string `json:"title"`              // Never empty once stored
	Body      string `json:"body"`               // May be empty
	ImageURI  string `json:"imageUri,omitempty"` // Local path of an attached image
	CreatedAt int64  `json:"createdAt"`          // Milliseconds since epoch, fixed at creation
	UpdatedAt int64  `json:"updatedAt"`          // Milliseconds since epoch, refreshed on every edit
}

// NoteDraft carries user input for creating or editing a note.
type NoteDraft struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURI string `json:"imageUri,omitempty"`
}

// SortOption selects the display order of a note listing.
type SortOption string

const (
	SortUpdatedDesc SortOption = "updatedDesc"
	SortUpdatedAsc  SortOption = "updatedAsc"
	SortTitleAsc    SortOption = "titleAsc"
	SortTitleDesc   SortOption = "titleDesc"
)

// Valid reports whether s is a known sort option.
func (s SortOption) Valid() bool {
	switch s {
	case SortUpdatedDesc, SortUpdatedAsc, SortTitleAsc, SortTitleDesc:
		return true
	}
	return false
}

// NoteQuery describes a filtered and sorted view over a collection.
type NoteQuery struct {
	Search string
	Sort   SortOption
}

// NowMillis returns the current time in milliseconds since epoch.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
