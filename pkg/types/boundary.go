package types

// Confirmer asks the user a blocking yes/no question. It suspends the
// calling workflow until answered but must not block unrelated work; each
// workflow runs on its own goroutine. Tests substitute a scripted responder.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Editor is the editing widget boundary. The engine reads the buffer to
// seed first-save content, replaces it when a document is opened, and
// clears it when the current document is deleted.
type Editor interface {
	Content() string
	SetContent(content string)
	Focus()
}

// Navigator is the URI input boundary: a single text input plus a
// suggestion list of all known URIs.
type Navigator interface {
	// SetInput programmatically sets the input value ("" clears it).
	SetInput(value string)

	// Refresh replaces the suggestion list with the given URIs.
	Refresh(uris []string)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(message string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(message string) (bool, error) { return f(message) }
