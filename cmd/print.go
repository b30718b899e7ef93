package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printMarkdown pretty-prints markdown when stdout is a terminal, and prints
// it raw otherwise so that piped output stays stable and scriptable.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Rendering is cosmetic only, fall back to the raw text.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
