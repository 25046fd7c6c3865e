package services

import (
	"sort"
	"strings"

	"github.com/sbilibin2017/pocket-notes/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterNotes keeps the notes whose title or body contains search, ignoring case.
// A blank search keeps everything. The input slice is not modified.
func FilterNotes(notes []models.Note, search string) []models.Note {
	s := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if s == "" ||
			strings.Contains(strings.ToLower(n.Title), s) ||
			strings.Contains(strings.ToLower(n.Body), s) {
			out = append(out, n)
		}
	}
	return out
}

// SortNotes orders notes in place. Title orders follow the collation rules of locale.
// Equal keys keep their relative order; an unknown option leaves notes as they are.
func SortNotes(notes []models.Note, by models.SortOption, locale language.Tag) {
	var less func(a, b models.Note) bool

	switch by {
	case models.SortUpdatedDesc:
		less = func(a, b models.Note) bool { return a.UpdatedAt > b.UpdatedAt }
	case models.SortUpdatedAsc:
		less = func(a, b models.Note) bool { return a.UpdatedAt < b.UpdatedAt }
	case models.SortTitleAsc, models.SortTitleDesc:
		c := collate.New(locale)
		sign := 1
		if by == models.SortTitleDesc {
			sign = -1
		}
		less = func(a, b models.Note) bool { return sign*c.CompareString(a.Title, b.Title) < 0 }
	default:
		return
	}

	sort.SliceStable(notes, func(i, j int) bool { return less(notes[i], notes[j]) })
}
