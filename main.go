// ABOUTME: Entry point for the jobdash CLI
// ABOUTME: Opens the interactive dashboard or runs a scripting subcommand

package main

import (
	"fmt"
	"os"

	"github.com/markalston/jobdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
