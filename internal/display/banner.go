package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/mediaprep/internal/term"
)

const ruleWidth = 43

// PrintBanner prints a framed title (e.g. "FILMTECH IMAGE OPTIMIZER"); the
// frame is Magenta and the title bold when colors are enabled.
func PrintBanner(w io.Writer, title string) {
	rule := strings.Repeat("═", ruleWidth)
	fmt.Fprintln(w, term.Paint(term.Magenta, rule))
	fmt.Fprintln(w, "  "+term.Paint(term.Bold, title))
	fmt.Fprintln(w, term.Paint(term.Magenta, rule))
}

// PrintSection prints a section header in the same frame style as the banner.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	PrintBanner(w, title)
}
