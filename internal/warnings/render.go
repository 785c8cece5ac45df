package warnings

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Render writes each warning to w, critical ones in red and the rest in yellow,
// separated by blank lines.
func Render(w io.Writer, items []Warning) {
	warnColor := color.New(color.FgYellow)
	critColor := color.New(color.FgRed)
	for i, item := range items {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		c := warnColor
		if item.Critical() {
			c = critColor
		}
		_, _ = c.Fprintln(w, item.String())
	}
}
