// CLI integration tests for the document open/list/delete lifecycle.
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestOpenCreatesDocument verifies that opening a new URI creates the
// category and document and reports the assigned ids.
func TestOpenCreatesDocument(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	result := env.MustRunScribe("open", "--yes", "--json", "work/notes")
	doc := ParseJSON[Document](t, result.Stdout)

	if doc.ID != 1 {
		t.Errorf("document id = %d, want 1", doc.ID)
	}
	if doc.URI != "work/notes" {
		t.Errorf("document uri = %q, want work/notes", doc.URI)
	}
	if doc.CategoryID != 1 {
		t.Errorf("category id = %d, want 1", doc.CategoryID)
	}
	if doc.Content != "" {
		t.Errorf("new document content = %q, want empty", doc.Content)
	}
}

// TestOpenUncategorized verifies that a bare name resolves without a
// category.
func TestOpenUncategorized(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	result := env.MustRunScribe("open", "--yes", "--json", "notes")
	doc := ParseJSON[Document](t, result.Stdout)

	if doc.URI != "notes" {
		t.Errorf("document uri = %q, want notes", doc.URI)
	}
	if doc.CategoryID != 0 {
		t.Errorf("category id = %d, want 0", doc.CategoryID)
	}
}

// TestOpenIsIdempotent verifies that reopening a URI resolves the same
// row instead of creating a duplicate.
func TestOpenIsIdempotent(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	first := ParseJSON[Document](t, env.MustRunScribe("open", "--yes", "--json", "work/notes").Stdout)
	second := ParseJSON[Document](t, env.MustRunScribe("open", "--yes", "--json", "work/notes").Stdout)

	if first.ID != second.ID {
		t.Errorf("reopen resolved id %d, want %d", second.ID, first.ID)
	}

	listResult := env.MustRunScribe("list", "--json")
	uris := ParseJSON[[]string](t, listResult.Stdout)
	if len(uris) != 1 {
		t.Errorf("uri count = %d, want 1", len(uris))
	}
}

// TestListOrdersByURI verifies that list prints every URI in order.
func TestListOrdersByURI(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	env.MustRunScribe("open", "--yes", "work/notes")
	env.MustRunScribe("open", "--yes", "work/todo")
	env.MustRunScribe("open", "--yes", "scratch")

	result := env.MustRunScribe("list")
	got := strings.Fields(result.Stdout)
	want := []string{"scratch", "work/notes", "work/todo"}

	if len(got) != len(want) {
		t.Fatalf("list returned %d uris, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestDeleteDocument verifies rm removes exactly the named document.
func TestDeleteDocument(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	env.MustRunScribe("open", "--yes", "work/notes")
	env.MustRunScribe("open", "--yes", "work/todo")

	env.MustRunScribe("rm", "--yes", "work/notes")

	result := env.MustRunScribe("list")
	if strings.Contains(result.Stdout, "work/notes") {
		t.Error("deleted document still listed")
	}
	if !strings.Contains(result.Stdout, "work/todo") {
		t.Error("unrelated document missing after delete")
	}
}

// TestDeleteMissingDocument verifies rm on an unknown URI fails with a
// user error.
func TestDeleteMissingDocument(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	result := env.RunScribe("rm", "--yes", "work/notes")
	if result.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "not found") {
		t.Errorf("stderr = %q, want a not-found message", result.Stderr)
	}
}

// TestDeleteClearsSessionHint verifies that deleting the current
// document empties the persisted session hint.
func TestDeleteClearsSessionHint(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunScribe("init")

	env.MustRunScribe("open", "--yes", "work/notes")

	hintPath := filepath.Join(env.DataDir, "session")
	hint, err := os.ReadFile(hintPath)
	if err != nil {
		t.Fatalf("session hint not written: %v", err)
	}
	if strings.TrimSpace(string(hint)) == "" {
		t.Fatal("session hint empty after open")
	}

	env.MustRunScribe("rm", "--yes", "work/notes")

	hint, err = os.ReadFile(hintPath)
	if err != nil {
		t.Fatalf("reading session hint: %v", err)
	}
	if strings.TrimSpace(string(hint)) != "" {
		t.Errorf("session hint = %q after deleting current document, want empty", hint)
	}
}
