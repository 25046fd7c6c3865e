package models

// Note event operations.
const (
	NoteCreated = "created"
	NoteUpdated = "updated"
	NoteDeleted = "deleted"
)

// NoteEvent describes a change to an owner's collection.
type NoteEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier of the event
	Timestamp int64  `json:"timestamp"` // Milliseconds since epoch when the change was stored
	Owner     string `json:"owner"`     // Username owning the collection
	NoteID    string `json:"note_id"`   // Affected note
	Operation string `json:"operation"` // One of created, updated, deleted
}
