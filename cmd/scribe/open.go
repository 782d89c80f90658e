// Open command: resolve a URI, creating missing rows on the way.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/engine"
)

var openCmd = &cobra.Command{
	Use:   "open <uri>",
	Short: "Open a document by URI, creating it if needed",
	Long: `Open resolves a URI of the form "category/name" or "name". A missing
document is created; a missing category is created after confirmation
(auto-accepted under --yes). The opened document becomes the current
document for the next interactive session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, dataDir, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "open:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		eng, editor, _ := newOneShotEngine(backend, dataDir)

		category, document := engine.ParseURI(args[0])
		outcome, err := eng.OpenOrCreate(category, document)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open:", err)
			os.Exit(exitSysError)
		}

		switch outcome {
		case engine.OutcomeCancelled:
			fmt.Fprintln(os.Stderr, "cancelled")
			os.Exit(exitUserError)
		case engine.OutcomeNoop:
			return nil
		}

		cur := eng.Current()
		if cur == nil {
			// Category-only URI: the category was resolved, nothing opened.
			fmt.Printf("Resolved category '%s'\n", category)
			return nil
		}

		if flagJSON {
			out, err := json.MarshalIndent(cur, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("Opened %s (id %d)\n", cur.URI, cur.ID)
		if editor.Content() != "" {
			fmt.Println(editor.Content())
		}
		return nil
	},
}
