// Unit tests for the category repository.
package sqlite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func TestCategoriesFindOrCreate(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "creates category on confirmation and assigns an id",
			check: func(t *testing.T, b *Backend) {
				cat, err := b.Categories().FindOrCreate("work", acceptAll)
				require.NoError(t, err)
				assert.Equal(t, int64(1), cat.ID, "first category should get id 1")
				assert.Equal(t, "work", cat.Name)
			},
		},
		{
			name: "returns existing category without confirmation",
			check: func(t *testing.T, b *Backend) {
				created, err := b.Categories().FindOrCreate("work", acceptAll)
				require.NoError(t, err)

				var asked bool
				nosy := types.ConfirmFunc(func(string) (bool, error) {
					asked = true
					return false, nil
				})
				got, err := b.Categories().FindOrCreate("work", nosy)
				require.NoError(t, err)
				assert.Equal(t, created.ID, got.ID)
				assert.False(t, asked, "existing category must not prompt")
			},
		},
		{
			name: "declined confirmation returns ErrCancelled and writes nothing",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Categories().FindOrCreate("work", declineAll)
				assert.ErrorIs(t, err, types.ErrCancelled)

				_, err = b.Categories().Find("work")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "repeated creation is idempotent",
			check: func(t *testing.T, b *Backend) {
				first, err := b.Categories().FindOrCreate("work", acceptAll)
				require.NoError(t, err)
				second, err := b.Categories().FindOrCreate("work", acceptAll)
				require.NoError(t, err)
				assert.Equal(t, first.ID, second.ID, "no duplicate rows")

				cats, err := b.Categories().ListAll()
				require.NoError(t, err)
				assert.Len(t, cats, 1)
			},
		},
		{
			name: "prompt message names the category",
			check: func(t *testing.T, b *Backend) {
				var msg string
				recorder := types.ConfirmFunc(func(m string) (bool, error) {
					msg = m
					return true, nil
				})
				_, err := b.Categories().FindOrCreate("journal", recorder)
				require.NoError(t, err)
				assert.Contains(t, msg, "journal")
			},
		},
		{
			name: "empty name is rejected",
			check: func(t *testing.T, b *Backend) {
				_, err := b.Categories().FindOrCreate("", acceptAll)
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
		{
			name: "confirmer error propagates",
			check: func(t *testing.T, b *Backend) {
				broken := types.ConfirmFunc(func(string) (bool, error) {
					return false, fmt.Errorf("prompt closed")
				})
				_, err := b.Categories().FindOrCreate("work", broken)
				require.Error(t, err)
				assert.NotErrorIs(t, err, types.ErrCancelled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newTestBackend(t))
		})
	}
}

func TestCategoriesFind(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.Categories().Find("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	created, err := b.Categories().FindOrCreate("work", acceptAll)
	require.NoError(t, err)

	got, err := b.Categories().Find("work")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCategoriesDelete(t *testing.T) {
	t.Run("removes category and its documents in one operation", func(t *testing.T) {
		b := newTestBackend(t)

		cat, err := b.Categories().FindOrCreate("work", acceptAll)
		require.NoError(t, err)
		_, err = b.Documents().FindOrCreate("notes", "work", cat.ID, "")
		require.NoError(t, err)
		_, err = b.Documents().FindOrCreate("plan", "work", cat.ID, "")
		require.NoError(t, err)

		require.NoError(t, b.Categories().Delete(cat.ID))

		_, err = b.Categories().Find("work")
		assert.ErrorIs(t, err, types.ErrNotFound)

		// No document row may reference the deleted category.
		uris, err := b.Documents().ListURIs()
		require.NoError(t, err)
		assert.Empty(t, uris)
	})

	t.Run("deleting a vanished category returns ErrNotFound", func(t *testing.T) {
		b := newTestBackend(t)
		assert.ErrorIs(t, b.Categories().Delete(42), types.ErrNotFound)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		b := newTestBackend(t)
		assert.ErrorIs(t, b.Categories().Delete(0), types.ErrInvalidID)
	})

	t.Run("leaves unrelated documents alone", func(t *testing.T) {
		b := newTestBackend(t)

		cat, err := b.Categories().FindOrCreate("work", acceptAll)
		require.NoError(t, err)
		_, err = b.Documents().FindOrCreate("notes", "work", cat.ID, "")
		require.NoError(t, err)
		_, err = b.Documents().FindOrCreate("scratch", "", 0, "keep me")
		require.NoError(t, err)

		require.NoError(t, b.Categories().Delete(cat.ID))

		uris, err := b.Documents().ListURIs()
		require.NoError(t, err)
		assert.Equal(t, []string{"scratch"}, uris)
	})
}

func TestCategoriesListAll(t *testing.T) {
	b := newTestBackend(t)

	cats, err := b.Categories().ListAll()
	require.NoError(t, err)
	assert.Empty(t, cats)

	for _, name := range []string{"work", "home", "journal"} {
		_, err := b.Categories().FindOrCreate(name, acceptAll)
		require.NoError(t, err)
	}

	cats, err = b.Categories().ListAll()
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "home", cats[0].Name)
	assert.Equal(t, "journal", cats[1].Name)
	assert.Equal(t, "work", cats[2].Name)
}
