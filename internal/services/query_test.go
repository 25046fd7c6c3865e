package services

import (
	"testing"

	"github.com/sbilibin2017/pocket-notes/internal/models"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func titles(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestFilterNotes(t *testing.T) {
	notes := []models.Note{
		{ID: "1", Title: "Diary", Body: "I saw a cat today"},
		{ID: "2", Title: "Dog walk", Body: "no pets mentioned"},
		{ID: "3", Title: "CATALOGUE", Body: ""},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "body match", search: "cat", want: []string{"Diary", "CATALOGUE"}},
		{name: "case insensitive title", search: "DOG", want: []string{"Dog walk"}},
		{name: "empty matches all", search: "", want: []string{"Diary", "Dog walk", "CATALOGUE"}},
		{name: "blank matches all", search: "   ", want: []string{"Diary", "Dog walk", "CATALOGUE"}},
		{name: "surrounding spaces trimmed", search: " walk ", want: []string{"Dog walk"}},
		{name: "no match", search: "bird", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(FilterNotes(notes, tt.search)))
		})
	}
}

func TestSortNotes(t *testing.T) {
	base := []models.Note{
		{ID: "1", Title: "banana", UpdatedAt: 20},
		{ID: "2", Title: "Apple", UpdatedAt: 30},
		{ID: "3", Title: "éclair", UpdatedAt: 10},
		{ID: "4", Title: "cherry", UpdatedAt: 30},
	}

	tests := []struct {
		name string
		by   models.SortOption
		want []string
	}{
		{name: "newest first, ties keep order", by: models.SortUpdatedDesc, want: []string{"Apple", "cherry", "banana", "éclair"}},
		{name: "oldest first", by: models.SortUpdatedAsc, want: []string{"éclair", "banana", "Apple", "cherry"}},
		{name: "title ascending uses collation", by: models.SortTitleAsc, want: []string{"Apple", "banana", "cherry", "éclair"}},
		{name: "title descending", by: models.SortTitleDesc, want: []string{"éclair", "cherry", "banana", "Apple"}},
		{name: "unknown option keeps order", by: "random", want: []string{"banana", "Apple", "éclair", "cherry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := append([]models.Note(nil), base...)
			SortNotes(notes, tt.by, language.English)
			assert.Equal(t, tt.want, titles(notes))
		})
	}
}
