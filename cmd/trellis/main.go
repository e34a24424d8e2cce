// Command trellis inspects trellis scene files without a display: it lays
// them out, renders them into a display list and replays recorded input.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/trellis/cmd/trellis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
