// External editor integration for the interactive navigator.
package main

import (
	"fmt"
	"os"
	"os/exec"
)

// resolveEditor picks the editor command: config value, then $EDITOR,
// then whichever of vi or nano is on PATH.
func resolveEditor() (string, error) {
	if configEditor != "" {
		return configEditor, nil
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, candidate := range []string{"vi", "nano"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no editor found: set editor in config.yaml or the EDITOR environment variable")
}

// editExternal writes content to a temp file, opens it in the resolved
// editor on the caller's terminal, and returns the edited content.
func editExternal(content string) (string, error) {
	editor, err := resolveEditor()
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "scribe-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", editor, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file back: %w", err)
	}
	return string(edited), nil
}
