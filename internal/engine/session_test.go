package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/internal/sqlite"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

func newSessionBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	b := sqlite.NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return b, dataDir
}

func TestSessionSetCurrent(t *testing.T) {
	_, dataDir := newSessionBackend(t)
	s := NewSession(dataDir)

	doc := &types.Document{ID: 7, Name: "notes", URI: "notes"}
	require.NoError(t, s.SetCurrent(doc))

	assert.Equal(t, doc, s.Current())

	// The hint file holds the document id.
	data, err := os.ReadFile(filepath.Join(dataDir, "session"))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}

func TestSessionClearCurrent(t *testing.T) {
	_, dataDir := newSessionBackend(t)
	s := NewSession(dataDir)

	require.NoError(t, s.SetCurrent(&types.Document{ID: 3}))
	require.NoError(t, s.ClearCurrent())

	assert.Nil(t, s.Current())

	// The file may remain, but its value must not resolve to anything.
	data, err := os.ReadFile(filepath.Join(dataDir, "session"))
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestSessionRestore(t *testing.T) {
	t.Run("resolves the hint against the store", func(t *testing.T) {
		b, dataDir := newSessionBackend(t)

		doc, err := b.Documents().FindOrCreate("notes", "", 0, "body")
		require.NoError(t, err)

		s := NewSession(dataDir)
		require.NoError(t, s.SetCurrent(doc))

		restored := NewSession(dataDir)
		got, err := restored.Restore(b.Documents())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, "body", got.Content)
		assert.Equal(t, got, restored.Current())
	})

	t.Run("missing hint file means no prior session", func(t *testing.T) {
		b, dataDir := newSessionBackend(t)

		s := NewSession(dataDir)
		got, err := s.Restore(b.Documents())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("hint for a deleted document means no prior session", func(t *testing.T) {
		b, dataDir := newSessionBackend(t)

		doc, err := b.Documents().FindOrCreate("notes", "", 0, "")
		require.NoError(t, err)

		s := NewSession(dataDir)
		require.NoError(t, s.SetCurrent(doc))
		require.NoError(t, b.Documents().Delete(doc.ID))

		restored := NewSession(dataDir)
		got, err := restored.Restore(b.Documents())
		require.NoError(t, err, "stale hint must not be an error")
		assert.Nil(t, got)
		assert.Nil(t, restored.Current())
	})

	t.Run("garbage hint content means no prior session", func(t *testing.T) {
		b, dataDir := newSessionBackend(t)
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "session"), []byte("not-a-number"), 0o644))

		s := NewSession(dataDir)
		got, err := s.Restore(b.Documents())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
