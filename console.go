package rbmap

import (
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"golang.org/x/term"
)

// Palette holds the colours used by Fprint for red and black nodes.
type Palette struct {
	Red, Black *fcolor.Color
}

// DefaultPalette returns the palette used by Fprint if none is given.
func DefaultPalette() Palette {
	return Palette{
		Red:   fcolor.New(fcolor.FgRed, fcolor.Bold),
		Black: fcolor.New(fcolor.FgBlue),
	}
}

// Fprint writes the tree of m to w, rotated by 90 degrees: the root is in the
// leftmost column and right subtrees are printed above left subtrees. Every
// node is printed as [key|colour].
//
// Colours are used only if w is a terminal.
func (m *Map[V]) Fprint(w io.Writer) error {
	return m.FprintPalette(w, DefaultPalette())
}

// FprintPalette is like Fprint, with explicit colours.
func (m *Map[V]) FprintPalette(w io.Writer, palette Palette) error {
	if isTerminal(w) {
		palette.Red.EnableColor()
		palette.Black.EnableColor()
	} else {
		palette.Red.DisableColor()
		palette.Black.DisableColor()
	}
	var err error
	var walk func(n *node[V], depth int)
	walk = func(n *node[V], depth int) {
		if n == nil || err != nil {
			return
		}
		walk(n.right, depth+1)
		if err != nil {
			return
		}
		c := palette.Black
		if n.IsRed() {
			c = palette.Red
		}
		if _, err = io.WriteString(w, strings.Repeat("    ", depth)); err != nil {
			return
		}
		if _, err = c.Fprint(w, n.String()); err != nil {
			return
		}
		if _, err = io.WriteString(w, "\n"); err != nil {
			return
		}
		walk(n.left, depth+1)
	}
	walk(m.root, 0)
	if err != nil {
		T().Errorf("rbmap print: %s", err.Error())
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
