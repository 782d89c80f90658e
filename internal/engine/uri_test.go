package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri      string
		category string
		document string
	}{
		{"work/notes", "work", "notes"},
		{"notes", "", "notes"},
		{"", "", ""},
		{"work/", "work", ""},
		{"/notes", "", "notes"},
		{"a/b/c", "a", "b/c"}, // only the first slash splits
		{"/", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			cat, doc := ParseURI(tt.uri)
			assert.Equal(t, tt.category, cat)
			assert.Equal(t, tt.document, doc)
		})
	}
}
