// Package parser implements the s-expression reader that turns source text
// into evaluator terms.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sage/internal/diag"
	"sage/internal/interp"
	"sage/internal/source"
)

// Reader scans one file into top-level terms.
type Reader struct {
	ip   *interp.Interp
	file source.FileID
	src  []byte
	pos  uint32
}

// NewReader prepares a reader over a loaded file.
func NewReader(ip *interp.Interp, file *source.File) *Reader {
	return &Reader{ip: ip, file: file.ID, src: file.Content}
}

// ReadAll scans every top-level form. Malformed input reports diagnostics
// and yields error values in place of the broken forms.
func (r *Reader) ReadAll() []interp.Value {
	var forms []interp.Value
	for {
		r.skipSpace()
		if r.eof() {
			return forms
		}
		forms = append(forms, r.readForm())
	}
}

func (r *Reader) eof() bool {
	return int(r.pos) >= len(r.src)
}

func (r *Reader) peek() byte {
	return r.src[r.pos]
}

func (r *Reader) span(start uint32) source.Span {
	return source.Span{File: r.file, Start: start, End: r.pos}
}

func (r *Reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.pos++
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *Reader) report(code diag.Code, sp source.Span, format string, args ...any) interp.Value {
	diag.ReportError(r.ip.Reporter, code, sp, fmt.Sprintf(format, args...))
	return r.ip.Error()
}

func (r *Reader) readForm() interp.Value {
	start := r.pos
	switch c := r.peek(); {
	case c == '(':
		return r.readList()
	case c == ')':
		r.pos++
		return r.report(diag.ReadUnexpectedParen, r.span(start), "Unexpected ')'.")
	case c == '\'':
		r.pos++
		r.skipSpace()
		if r.eof() {
			return r.report(diag.ReadUnexpectedChar, r.span(start), "Expected form after quote.")
		}
		quoted := r.readForm()
		sp := r.span(start)
		return r.ip.ListOf(sp, r.ip.Symbol(sp, "quote"), quoted).WithLoc(sp)
	case c == '"':
		return r.readString()
	default:
		return r.readAtom()
	}
}

func (r *Reader) readList() interp.Value {
	start := r.pos
	r.pos++ // consume '('
	var elems []interp.Value
	for {
		r.skipSpace()
		if r.eof() {
			return r.report(diag.ReadUnclosedParen, r.span(start), "Unclosed '('.")
		}
		if r.peek() == ')' {
			r.pos++
			sp := r.span(start)
			return r.ip.ListOf(sp, elems...).WithLoc(sp)
		}
		elems = append(elems, r.readForm())
	}
}

func (r *Reader) readString() interp.Value {
	start := r.pos
	r.pos++ // consume '"'
	var sb strings.Builder
	for {
		if r.eof() {
			return r.report(diag.ReadUnterminatedString, r.span(start), "Unterminated string literal.")
		}
		c := r.peek()
		r.pos++
		switch c {
		case '"':
			return r.ip.String(r.span(start), norm.NFC.String(sb.String()))
		case '\\':
			if r.eof() {
				return r.report(diag.ReadUnterminatedString, r.span(start), "Unterminated string literal.")
			}
			esc := r.peek()
			r.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return r.report(diag.ReadUnexpectedChar, r.span(start), "Unknown escape '\\%c'.", esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '\'', '"', ';':
		return true
	}
	return false
}

func (r *Reader) readAtom() interp.Value {
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.pos++
	}
	sp := r.span(start)
	text := string(r.src[start:r.pos])
	if looksNumeric(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return r.report(diag.ReadBadNumber, sp, "Invalid integer literal '%s'.", text)
		}
		return r.ip.Int(sp, n)
	}
	switch text {
	case "true":
		return r.ip.Bool(sp, true)
	case "false":
		return r.ip.Bool(sp, false)
	}
	return r.ip.Symbol(sp, norm.NFC.String(text))
}

func looksNumeric(text string) bool {
	if text == "" {
		return false
	}
	body := text
	if body[0] == '-' || body[0] == '+' {
		if len(body) == 1 {
			return false
		}
		body = body[1:]
	}
	return body[0] >= '0' && body[0] <= '9'
}
