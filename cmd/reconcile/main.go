// reconcile serves the museum cultural heritage reconciliation API:
// CSV-loaded museum, artist, and artifact records matched against
// free-text queries for tools like OpenRefine.
package main

import (
	"os"

	"github.com/culturegraph/reconcile/cmd/reconcile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
