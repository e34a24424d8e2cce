package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print the laid out widget tree of a scene",
		Long: `Build a scene file on a headless screen, run a layout pass and print
one line per widget: its type, id and caption, absolute position and size.

The screen size comes from the scene file, then trellis.yaml, then 800x600.`,
		Usage: "trellis layout <scene.yaml|scene.toml>",
		Run:   runLayout,
	})
}

func runLayout(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("layout requires exactly one scene file")
	}
	s, err := newSession(args[0])
	if err != nil {
		return err
	}
	s.screen.PerformLayout(s.recorder)
	printTree(stdout, s.screen, 0)
	return nil
}
