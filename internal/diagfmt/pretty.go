// Package diagfmt renders diagnostics for humans.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sage/internal/diag"
	"sage/internal/source"
)

// PrettyOpts controls rendering.
type PrettyOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errColor.Sprint(label)
	case diag.SevWarning:
		return warnColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

// Pretty formats diagnostics in a human-readable form. Callers are expected
// to Sort() the bag first. Each diagnostic prints as
// <path>:<line>:<col>: <SEV> <CODE>: <message>, followed by the source line
// with a ^~~~ underline over the primary span, then notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printOne(w, fs, d.Primary, severityLabel(d.Severity, opts.Color), d.Code.String(), d.Message)
		for _, n := range d.Notes {
			printOne(w, fs, n.Span, "NOTE", "", n.Msg)
		}
	}
}

func printOne(w io.Writer, fs *source.FileSet, sp source.Span, sev, code, msg string) {
	path, lc := fs.Resolve(sp)
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, lc.Line, lc.Col, sev, code, msg)
	} else {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, lc.Line, lc.Col, sev, msg)
	}
	file := fs.Get(sp.File)
	if file == nil {
		return
	}
	lineText := file.Line(lc.Line)
	if lineText == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", lineText)

	// The underline is aligned by display width, not byte count.
	prefix := lineText
	if int(lc.Col-1) <= len(lineText) {
		prefix = lineText[:lc.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	span := int(sp.Len())
	if span < 1 {
		span = 1
	}
	if rest := len(lineText) - len(prefix); span > rest && rest > 0 {
		span = rest
	}
	underline := "^"
	if span > 1 {
		underline += strings.Repeat("~", span-1)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, underline)
}
