package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// newTestBackend returns an attached backend over a temp data dir,
// detached on test cleanup.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	b := NewBackend(nil)
	err := b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)

	t.Cleanup(func() { b.Detach() })
	return b
}

// acceptAll is a Confirmer that always answers yes.
var acceptAll = types.ConfirmFunc(func(string) (bool, error) { return true, nil })

// declineAll is a Confirmer that always answers no.
var declineAll = types.ConfirmFunc(func(string) (bool, error) { return false, nil })
