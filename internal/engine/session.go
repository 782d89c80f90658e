package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// hintFileName is the durable restart hint inside the data dir. It holds
// the id of the last current document so a restart can reopen it.
const hintFileName = "session"

// Session owns the single piece of process-wide mutable state: which
// document, if any, is currently open in the editor. The pointer is
// mirrored into the hint file on every change so a restart can recover it.
type Session struct {
	current  *types.Document
	hintPath string
}

// NewSession creates a session whose restart hint lives in dataDir.
func NewSession(dataDir string) *Session {
	return &Session{hintPath: filepath.Join(dataDir, hintFileName)}
}

// Current returns the currently open document, or nil when none is open.
func (s *Session) Current() *types.Document {
	return s.current
}

// SetCurrent updates the pointer and writes the durable hint. The hint
// write is atomic so a crash never leaves a torn file behind.
func (s *Session) SetCurrent(doc *types.Document) error {
	s.current = doc
	hint := strconv.FormatInt(doc.ID, 10)
	if err := atomic.WriteFile(s.hintPath, strings.NewReader(hint)); err != nil {
		return fmt.Errorf("writing session hint: %w", err)
	}
	return nil
}

// ClearCurrent sets the pointer to absent and empties the hint. The hint
// file may remain on disk; an empty or stale value is treated as no prior
// session on restart, never as an error.
func (s *Session) ClearCurrent() error {
	s.current = nil
	if err := atomic.WriteFile(s.hintPath, strings.NewReader("")); err != nil {
		return fmt.Errorf("clearing session hint: %w", err)
	}
	return nil
}

// Restore reads the hint and resolves it against the store. A missing
// file, an unparseable value, or a hint pointing at a deleted document all
// mean "no prior session" and return (nil, nil). Only store failures are
// reported as errors.
func (s *Session) Restore(docs types.DocumentRepository) (*types.Document, error) {
	data, err := os.ReadFile(s.hintPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session hint: %w", err)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || id <= 0 {
		return nil, nil
	}

	doc, err := docs.Get(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// The hinted document was deleted since the last run.
			return nil, nil
		}
		return nil, err
	}

	s.current = doc
	return doc, nil
}
