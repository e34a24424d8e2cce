package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Print the drawing operations of a scene",
		Long: `Build a scene file on a headless screen, draw one frame into a display
list and print its operations, one per line.

Flags:
  --texts    Print only the strings drawn by text operations`,
		Usage: "trellis render <scene> [--texts]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	flags, positional, err := splitFlags(args, "texts")
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("render requires exactly one scene file")
	}
	s, err := newSession(positional[0])
	if err != nil {
		return err
	}

	dl := s.frame()
	if _, ok := flags["texts"]; ok {
		for _, t := range dl.Texts() {
			fmt.Fprintln(stdout, t)
		}
		return nil
	}
	fmt.Fprintf(stdout, "# %s %dx%d, %d ops\n", s.screen.Caption(), dl.Size().X, dl.Size().Y, len(dl.Ops()))
	for _, op := range dl.Ops() {
		fmt.Fprintln(stdout, op.String())
	}
	return nil
}
