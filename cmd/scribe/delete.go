// Delete commands: rm removes a document, rmcat removes a category and
// everything in it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/engine"
)

var rmCmd = &cobra.Command{
	Use:   "rm <uri>",
	Short: "Delete a document by URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, dataDir, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "rm:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		eng, _, _ := newOneShotEngine(backend, dataDir)

		category, document := engine.ParseURI(args[0])

		ok, err := cliConfirmer().Confirm(fmt.Sprintf("Delete document '%s'?", args[0]))
		if err != nil {
			fmt.Fprintln(os.Stderr, "rm:", err)
			os.Exit(exitSysError)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "cancelled")
			os.Exit(exitUserError)
		}

		// Restore first so deleting the current document clears the
		// session hint.
		if _, err := eng.Restore(); err != nil {
			fmt.Fprintln(os.Stderr, "rm:", err)
			os.Exit(exitSysError)
		}

		outcome, err := eng.DeleteDocument(category, document)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rm:", err)
			os.Exit(exitSysError)
		}

		switch outcome {
		case engine.OutcomeNotFound:
			fmt.Fprintf(os.Stderr, "document %q not found\n", args[0])
			os.Exit(exitUserError)
		case engine.OutcomeNoop:
			return nil
		}

		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var rmcatCmd = &cobra.Command{
	Use:   "rmcat <category>",
	Short: "Delete a category and all documents in it",
	Long: `Rmcat deletes a category. When the category still contains documents,
one confirmation covers deleting them all together with the category;
declining leaves everything intact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, dataDir, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "rmcat:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		eng, _, _ := newOneShotEngine(backend, dataDir)

		if _, err := eng.Restore(); err != nil {
			fmt.Fprintln(os.Stderr, "rmcat:", err)
			os.Exit(exitSysError)
		}

		outcome, err := eng.DeleteCategory(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "rmcat:", err)
			os.Exit(exitSysError)
		}

		switch outcome {
		case engine.OutcomeNotFound:
			fmt.Fprintf(os.Stderr, "category %q not found\n", args[0])
			os.Exit(exitUserError)
		case engine.OutcomeCancelled:
			fmt.Fprintln(os.Stderr, "cancelled")
			os.Exit(exitUserError)
		case engine.OutcomeNoop:
			return nil
		}

		fmt.Printf("Deleted category %s\n", args[0])
		return nil
	},
}
