package toon

import "strings"

// lineWriter accumulates (text, depth) pairs and renders them with the
// configured indent unit. Keeping all depth arithmetic here means the
// object and array encoders never build indentation strings themselves.
type lineWriter struct {
	unit  string
	lines []writerLine
}

type writerLine struct {
	text  string
	depth int
}

func newLineWriter(indentWidth int) *lineWriter {
	return &lineWriter{unit: strings.Repeat(" ", indentWidth)}
}

func (w *lineWriter) push(text string, depth int) {
	w.lines = append(w.lines, writerLine{text: text, depth: depth})
}

// render joins all accumulated lines with a single newline, prefixing each
// with depth repetitions of the indent unit. No trailing newline is added.
func (w *lineWriter) render() string {
	var b strings.Builder
	for i, ln := range w.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for d := 0; d < ln.depth; d++ {
			b.WriteString(w.unit)
		}
		b.WriteString(ln.text)
	}
	return b.String()
}
