package cmd

import (
	"fmt"
	"runtime"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  `Show the trellis CLI version, build time and Go runtime.`,
		Usage: "trellis version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	fmt.Fprintf(stdout, "trellis CLI version %s (built %s, %s)\n", Version, BuildTime, runtime.Version())
}
