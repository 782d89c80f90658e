// Package main provides the scribe CLI: a single-user document editor
// backed by a local SQLite store. Documents are addressed by a typed URI
// of the form "category/name" or "name".
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
