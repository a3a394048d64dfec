// Command cardctl renders feed card snapshots from a file without the HTTP server.
package main

import (
	"os"

	"feedcard/cmd/cardctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
