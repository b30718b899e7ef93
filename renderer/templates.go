package renderer

import "embed"

// templates holds the markdown templates, assemblies and partials alike.
// A file named x_y.md is a partial of the assembly x.md.
//
//go:embed *.md
var templates embed.FS
