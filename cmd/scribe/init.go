// Init command: create the config and data directories and the schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the scribe store",
	Long:  `Init creates the configuration directory, a default config.yaml, the data directory, and the document database schema.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and config.yaml were created by PersistentPreRunE;
		// attaching creates the data dir and schema.
		backend, dataDir, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		fmt.Printf("Initialized scribe store in %s\n", dataDir)
		return nil
	},
}
