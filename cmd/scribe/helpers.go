// Shared helpers for scribe CLI commands.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mesh-intelligence/scribe/internal/engine"
	"github.com/mesh-intelligence/scribe/internal/sqlite"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend,
// and attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, string, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: defaultBackend,
		DataDir: dataDir,
		Editor:  configEditor,
	}

	backend := sqlite.NewBackend(slog.Default())
	if err := backend.Attach(cfg); err != nil {
		return nil, "", fmt.Errorf("attach backend: %w", err)
	}

	return backend, dataDir, nil
}

// newOneShotEngine builds an engine for a single command invocation, with
// an in-memory editor buffer and a navigator that only tracks the input
// value. Confirmation prompts go to the terminal unless --yes is set.
func newOneShotEngine(backend *sqlite.Backend, dataDir string) (*engine.Engine, *bufferEditor, *silentNavigator) {
	editor := &bufferEditor{}
	navigator := &silentNavigator{}
	session := engine.NewSession(dataDir)
	eng := engine.New(backend, session, cliConfirmer(), editor, navigator, slog.Default())
	return eng, editor, navigator
}

// cliConfirmer returns the confirmation boundary for one-shot commands:
// auto-accept under --yes, otherwise a terminal y/n prompt.
func cliConfirmer() types.Confirmer {
	if flagYes {
		return types.ConfirmFunc(func(string) (bool, error) { return true, nil })
	}
	return types.ConfirmFunc(promptYesNo)
}

// promptYesNo asks a yes/no question on the terminal and blocks for the
// answer.
func promptYesNo(message string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "%s [y/n]: ", message)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(os.Stderr, "Please answer y or n.")
		}
	}
}

// bufferEditor is the editor boundary for one-shot commands: a plain
// in-memory buffer.
type bufferEditor struct {
	content string
}

func (e *bufferEditor) Content() string     { return e.content }
func (e *bufferEditor) SetContent(c string) { e.content = c }
func (e *bufferEditor) Focus()              {}

// silentNavigator is the navigator boundary for one-shot commands; it
// records the state the interactive navigator would display.
type silentNavigator struct {
	input string
	uris  []string
}

func (n *silentNavigator) SetInput(v string)     { n.input = v }
func (n *silentNavigator) Refresh(uris []string) { n.uris = uris }
