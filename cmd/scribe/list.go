// List command: print all known document URIs.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all document URIs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, dataDir, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		eng, _, _ := newOneShotEngine(backend, dataDir)

		uris, err := eng.URIs()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			if uris == nil {
				uris = []string{}
			}
			out, err := json.MarshalIndent(uris, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal uris: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		for _, uri := range uris {
			fmt.Println(uri)
		}
		return nil
	},
}
