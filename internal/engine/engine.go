package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// Outcome is the terminal state of a workflow. Store failures are reported
// separately as errors; an Outcome never accompanies a half-applied state.
type Outcome string

const (
	// OutcomeApplied means every applicable step committed.
	OutcomeApplied Outcome = "applied"
	// OutcomeCancelled means the user declined a confirmation; only the
	// in-flight workflow was abandoned, committed sub-steps stand.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeNotFound means a required row did not exist; nothing was
	// mutated.
	OutcomeNotFound Outcome = "not-found"
	// OutcomeNoop means there was nothing to do (e.g. empty input).
	OutcomeNoop Outcome = "noop"
)

// Store bundles the two repositories the engine orchestrates.
type Store interface {
	Categories() types.CategoryRepository
	Documents() types.DocumentRepository
}

// Engine orchestrates the repositories to implement the open-or-create,
// delete-document, and delete-category workflows, and keeps the session
// pointer, editor buffer, and navigator consistent with the store.
//
// Workflows are serialized by an internal mutex: overlapping user actions
// queue up rather than interleave, and every workflow re-resolves rows
// instead of trusting ids read before it acquired the lock.
type Engine struct {
	mu sync.Mutex

	categories types.CategoryRepository
	documents  types.DocumentRepository
	session    *Session
	confirm    types.Confirmer
	editor     types.Editor
	navigator  types.Navigator
	logger     *slog.Logger
}

// New creates an engine over the given store and collaborators. A nil
// logger is replaced with slog.Default().
func New(store Store, session *Session, confirm types.Confirmer, editor types.Editor, navigator types.Navigator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		categories: store.Categories(),
		documents:  store.Documents(),
		session:    session,
		confirm:    confirm,
		editor:     editor,
		navigator:  navigator,
		logger:     logger.With("component", "engine"),
	}
}

// OpenOrCreate resolves the typed (category, document) pair, creating
// missing rows along the way. Category creation is confirmation-gated; a
// decline cancels the whole workflow before the document step runs and
// clears the navigator input. On success the resolved document becomes
// current and its content is loaded into the editor.
//
// When no document is currently open, a newly created document is seeded
// with the editor buffer so unsaved first-draft content is not lost.
func (e *Engine) OpenOrCreate(categoryName, documentName string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.opLogger("open-or-create", categoryName, documentName)

	if categoryName == "" && documentName == "" {
		e.navigator.SetInput("")
		return OutcomeNoop, nil
	}

	var cat *types.Category
	if categoryName != "" {
		var err error
		cat, err = e.categories.FindOrCreate(categoryName, e.confirm)
		if err != nil {
			if errors.Is(err, types.ErrCancelled) {
				// The document step must not run; leave nothing of the
				// failed input on screen.
				e.navigator.SetInput("")
				return OutcomeCancelled, nil
			}
			log.Error("category resolution failed", "error", err)
			e.navigator.SetInput("")
			return "", fmt.Errorf("resolving category %q: %w", categoryName, err)
		}
	}

	if documentName != "" {
		// First-save convenience: seed a new document with whatever is in
		// the editor, but only when nothing is currently open.
		var seed string
		if e.session.Current() == nil {
			seed = e.editor.Content()
		}

		var catID int64
		var catName string
		if cat != nil {
			catID = cat.ID
			catName = cat.Name
		}

		doc, err := e.documents.FindOrCreate(documentName, catName, catID, seed)
		if err != nil {
			log.Error("document resolution failed", "error", err)
			e.navigator.SetInput("")
			return "", fmt.Errorf("resolving document %q: %w", documentName, err)
		}

		if err := e.session.SetCurrent(doc); err != nil {
			log.Warn("session hint write failed", "error", err)
		}
		e.editor.SetContent(doc.Content)
		e.editor.Focus()
		e.navigator.SetInput(doc.URI)
		log.Debug("document opened", "uri", doc.URI, "id", doc.ID)
	}

	e.refreshNavigator(log)
	return OutcomeApplied, nil
}

// Save overwrites the current document's content. With no current document
// the call is a no-op: the buffer is a transient first draft until the
// first open-or-create names it. Store failures are logged and returned;
// a row deleted out from under the save is already a silent no-op at the
// repository level.
func (e *Engine) Save(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.session.Current()
	if cur == nil {
		return nil
	}
	if err := e.documents.Save(cur.ID, content); err != nil {
		e.logger.Error("autosave failed", "id", cur.ID, "error", err)
		return err
	}
	return nil
}

// DeleteDocument removes the named document. The category is resolved
// with a plain lookup; deleting never creates. A missing category or
// document aborts with OutcomeNotFound and no mutation. Deleting the
// current document clears the editor buffer and session pointer. The
// navigator input is reset to the category prefix so the user can type
// another name in the same category.
func (e *Engine) DeleteDocument(categoryName, documentName string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.opLogger("delete-document", categoryName, documentName)

	// Empty delete input does nothing, mirroring the editor's Delete key
	// with an empty navigator.
	if documentName == "" {
		return OutcomeNoop, nil
	}

	var catID int64
	var prefix string
	if categoryName != "" {
		cat, err := e.categories.Find(categoryName)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return OutcomeNotFound, nil
			}
			log.Error("category lookup failed", "error", err)
			return "", fmt.Errorf("resolving category %q: %w", categoryName, err)
		}
		catID = cat.ID
		prefix = cat.Name + "/"
	}

	doc, err := e.documents.Find(documentName, catID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return OutcomeNotFound, nil
		}
		log.Error("document lookup failed", "error", err)
		return "", fmt.Errorf("resolving document %q: %w", documentName, err)
	}

	if err := e.documents.Delete(doc.ID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Vanished between lookup and delete; nothing to do.
			return OutcomeNotFound, nil
		}
		log.Error("document delete failed", "id", doc.ID, "error", err)
		return "", fmt.Errorf("deleting document %q: %w", doc.URI, err)
	}

	if cur := e.session.Current(); cur != nil && cur.ID == doc.ID {
		e.editor.SetContent("")
		if err := e.session.ClearCurrent(); err != nil {
			log.Warn("session hint clear failed", "error", err)
		}
	}

	e.refreshNavigator(log)
	e.navigator.SetInput(prefix)
	log.Debug("document deleted", "uri", doc.URI, "id", doc.ID)
	return OutcomeApplied, nil
}

// DeleteCategory removes the named category and, after one confirmation
// covering the whole decision, every document assigned to it. A decline
// leaves both the documents and the category intact. The two deletions
// commit in a single transaction, documents first. If the current
// document was among the casualties the editor buffer and session pointer
// are cleared.
func (e *Engine) DeleteCategory(categoryName string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.opLogger("delete-category", categoryName, "")

	if categoryName == "" {
		return OutcomeNoop, nil
	}

	cat, err := e.categories.Find(categoryName)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return OutcomeNotFound, nil
		}
		log.Error("category lookup failed", "error", err)
		return "", fmt.Errorf("resolving category %q: %w", categoryName, err)
	}

	docs, err := e.documents.ListByCategory(cat.ID)
	if err != nil {
		log.Error("document listing failed", "error", err)
		return "", fmt.Errorf("listing documents of %q: %w", categoryName, err)
	}

	if len(docs) > 0 {
		ok, err := e.confirm.Confirm(cascadeMessage(cat.Name, docs))
		if err != nil {
			return "", fmt.Errorf("confirming category deletion: %w", err)
		}
		if !ok {
			// One atomic user decision: neither the documents nor the
			// category are touched.
			return OutcomeCancelled, nil
		}
	}

	if err := e.categories.Delete(cat.ID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return OutcomeNotFound, nil
		}
		log.Error("category delete failed", "id", cat.ID, "error", err)
		return "", fmt.Errorf("deleting category %q: %w", categoryName, err)
	}

	if cur := e.session.Current(); cur != nil && cur.CategoryID == cat.ID {
		e.editor.SetContent("")
		if err := e.session.ClearCurrent(); err != nil {
			log.Warn("session hint clear failed", "error", err)
		}
	}

	e.refreshNavigator(log)
	e.navigator.SetInput("")
	log.Debug("category deleted", "name", cat.Name, "documents", len(docs))
	return OutcomeApplied, nil
}

// Restore reopens the document the restart hint points at, if it still
// exists. A stale or missing hint means a fresh session.
func (e *Engine) Restore() (*types.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.opLogger("restore", "", "")

	doc, err := e.session.Restore(e.documents)
	if err != nil {
		log.Error("session restore failed", "error", err)
		return nil, err
	}
	if doc != nil {
		e.editor.SetContent(doc.Content)
		e.editor.Focus()
		e.navigator.SetInput(doc.URI)
		log.Debug("session restored", "uri", doc.URI, "id", doc.ID)
	}
	e.refreshNavigator(log)
	return doc, nil
}

// Current returns the currently open document, or nil.
func (e *Engine) Current() *types.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Current()
}

// URIs returns all known document URIs for display and completion.
func (e *Engine) URIs() ([]string, error) {
	return e.documents.ListURIs()
}

// refreshNavigator pushes the current URI list to the navigator. A listing
// failure is logged and skipped; the suggestion list goes stale rather
// than failing the workflow that already committed.
func (e *Engine) refreshNavigator(log *slog.Logger) {
	uris, err := e.documents.ListURIs()
	if err != nil {
		log.Warn("navigator refresh failed", "error", err)
		return
	}
	e.navigator.Refresh(uris)
}

// opLogger returns a logger carrying a fresh operation id and the workflow
// inputs, so concurrent workflow logs can be told apart.
func (e *Engine) opLogger(op, category, document string) *slog.Logger {
	return e.logger.With("op", op, "op_id", uuid.NewString(), "category", category, "document", document)
}

// cascadeMessage builds the confirmation prompt for a category deletion
// that would also delete its documents.
func cascadeMessage(categoryName string, docs []*types.Document) string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return fmt.Sprintf("The category '%s' contains %d documents: %s. If you proceed, they will be deleted.",
		categoryName, len(docs), strings.Join(names, ", "))
}
