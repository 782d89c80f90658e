// Version command for the scribe CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the scribe release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/scribe"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scribe version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "scribe v%s\nmodule: %s\n", Version, modulePath)
		return nil
	},
}
