// Interactive navigator: a readline loop where a typed URI opens or
// creates a document, with tab completion over all known URIs.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/engine"
)

// historyFile returns the path to the navigator history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scribe_history")
}

// repl is the interactive navigator loop. It implements both the
// Confirmer and Navigator boundaries: confirmations are asked inline on
// the same terminal, and the navigator input value becomes the
// pre-filled text of the next prompt.
type repl struct {
	engine *engine.Engine
	editor *bufferEditor
	line   *liner.State

	input string   // navigator input value, pre-filled into the next prompt
	uris  []string // suggestion list for tab completion
}

// runNavigator starts the interactive navigator. Invoked when scribe runs
// without a subcommand.
func runNavigator(cmd *cobra.Command, args []string) error {
	backend, dataDir, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "scribe:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	r := &repl{editor: &bufferEditor{}}
	session := engine.NewSession(dataDir)
	r.engine = engine.New(backend, session, r, r.editor, r, slog.Default())

	return r.run()
}

// SetInput implements the Navigator boundary: the value is pre-filled
// into the next prompt (the category prefix after a delete, the opened
// URI after an open, empty after a cancel).
func (r *repl) SetInput(value string) { r.input = value }

// Refresh implements the Navigator boundary suggestion list.
func (r *repl) Refresh(uris []string) { r.uris = uris }

// Confirm implements the Confirmer boundary with an inline y/n prompt.
// Under --yes every question is answered affirmatively.
func (r *repl) Confirm(message string) (bool, error) {
	if flagYes {
		return true, nil
	}
	for {
		answer, err := r.line.Prompt(message + " [y/n]: ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return false, nil
			}
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Println("Please answer y or n.")
		}
	}
}

func (r *repl) run() error {
	r.line = liner.NewLiner()
	defer r.line.Close()

	r.line.SetCtrlCAborts(true)
	r.line.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}

	// Reopen the last session's document, if it still exists.
	if doc, err := r.engine.Restore(); err == nil && doc != nil {
		fmt.Printf("Restored %s\n", doc.URI)
	}

	fmt.Printf("scribe v%s - type a URI to open or create a document\n", Version)
	fmt.Println("Commands: ls, show, edit, rm <uri>, rmcat <category>, help, quit")
	fmt.Println()

	for {
		text, err := r.line.PromptWithSuggestion("scribe> ", r.input, len(r.input))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			r.input = ""
			continue
		}
		r.line.AppendHistory(text)

		parts := strings.Fields(text)
		switch strings.ToLower(parts[0]) {
		case "quit", "exit", "q":
			fmt.Println("Bye!")
			r.saveHistory()
			return nil

		case "help", "?":
			r.printHelp()

		case "ls", "list":
			r.cmdList()

		case "show":
			r.cmdShow()

		case "edit":
			r.cmdEdit()

		case "rm", "del":
			if len(parts) < 2 {
				fmt.Println("usage: rm <uri>")
				continue
			}
			r.cmdDelete(parts[1])

		case "rmcat":
			if len(parts) < 2 {
				fmt.Println("usage: rmcat <category>")
				continue
			}
			r.cmdDeleteCategory(parts[1])

		default:
			// Anything else is a URI.
			r.cmdOpen(text)
		}
	}

	r.saveHistory()
	return nil
}

// cmdOpen resolves a typed URI through the open-or-create workflow.
func (r *repl) cmdOpen(uri string) {
	category, document := engine.ParseURI(uri)
	outcome, err := r.engine.OpenOrCreate(category, document)
	if err != nil {
		fmt.Println("open failed:", err)
		return
	}
	switch outcome {
	case engine.OutcomeCancelled:
		fmt.Println("cancelled")
	case engine.OutcomeApplied:
		if cur := r.engine.Current(); cur != nil {
			fmt.Printf("Opened %s (id %d)\n", cur.URI, cur.ID)
		}
	}
}

// cmdDelete mirrors the editor's Delete key: a URI with a document part
// deletes the document; a bare "category/" falls back to deleting the
// category.
func (r *repl) cmdDelete(uri string) {
	category, document := engine.ParseURI(uri)

	if document != "" {
		ok, err := r.Confirm(fmt.Sprintf("Delete document '%s'?", uri))
		if err != nil || !ok {
			return
		}
		outcome, err := r.engine.DeleteDocument(category, document)
		if err != nil {
			fmt.Println("delete failed:", err)
			return
		}
		if outcome == engine.OutcomeNotFound {
			fmt.Printf("document %q not found\n", uri)
		}
		return
	}

	if category != "" {
		ok, err := r.Confirm(fmt.Sprintf("Delete category '%s'?", category))
		if err != nil || !ok {
			return
		}
		r.cmdDeleteCategory(category)
	}
}

func (r *repl) cmdDeleteCategory(name string) {
	outcome, err := r.engine.DeleteCategory(name)
	if err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	switch outcome {
	case engine.OutcomeNotFound:
		fmt.Printf("category %q not found\n", name)
	case engine.OutcomeCancelled:
		fmt.Println("cancelled")
	}
}

func (r *repl) cmdList() {
	uris, err := r.engine.URIs()
	if err != nil {
		fmt.Println("list failed:", err)
		return
	}
	for _, uri := range uris {
		fmt.Println(uri)
	}
}

func (r *repl) cmdShow() {
	cur := r.engine.Current()
	if cur == nil {
		fmt.Println("no document open")
		return
	}
	fmt.Printf("--- %s ---\n%s\n", cur.URI, r.editor.Content())
}

// cmdEdit hands the current buffer to the external editor and autosaves
// whatever comes back.
func (r *repl) cmdEdit() {
	cur := r.engine.Current()
	if cur == nil {
		fmt.Println("no document open")
		return
	}

	content, err := editExternal(r.editor.Content())
	if err != nil {
		fmt.Println("edit failed:", err)
		return
	}

	r.editor.SetContent(content)
	if err := r.engine.Save(content); err != nil {
		fmt.Println("save failed:", err)
	}
}

func (r *repl) printHelp() {
	fmt.Println(`Type a URI ("category/name" or "name") to open or create a document.
  ls                 list all document URIs
  show               print the current document
  edit               open the current document in your editor and save
  rm <uri>           delete a document (or "cat/" to delete a category)
  rmcat <category>   delete a category and all its documents
  quit               exit`)
}

// saveHistory persists the navigator history to disk.
func (r *repl) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
}

// completer offers the REPL commands and every known document URI.
func (r *repl) completer(line string) []string {
	candidates := append([]string{"ls", "show", "edit", "rm ", "rmcat ", "help", "quit"}, r.uris...)

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}
	return matches
}
