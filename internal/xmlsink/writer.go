// Package xmlsink writes XML element streams. Elements without content are
// written self-closing; namespace declarations are emitted only where a
// prefix binding is not already in scope.
package xmlsink

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Options tunes the output layout.
type Options struct {
	// Indent, when non-empty, puts each element on its own line.
	Indent string
	// Declaration writes an XML declaration in StartDocument.
	Declaration bool
}

type element struct {
	qname       string
	bindings    int
	hasChildren bool
	hasText     bool
}

type binding struct{ prefix, ns string }

// Writer is a streaming XML writer. The first error is sticky and returned
// by every later call.
type Writer struct {
	w        *bufio.Writer
	opt      Options
	stack    []element
	bindings []binding
	pending  bool
	started  bool
	err      error
}

var (
	errNoOpenTag    = errors.New("xmlsink: attribute written outside a start tag")
	errUnbalanced   = errors.New("xmlsink: end element without matching start")
	errOpenElements = errors.New("xmlsink: document ended with open elements")
	errEmptyName    = errors.New("xmlsink: empty element name")
)

// New returns a Writer on w.
func New(w io.Writer, opt Options) *Writer {
	return &Writer{w: bufio.NewWriter(w), opt: opt}
}

func (x *Writer) write(s string) {
	if x.err == nil {
		_, x.err = x.w.WriteString(s)
	}
}

func (x *Writer) escape(s string) {
	if x.err != nil {
		return
	}
	if i := InvalidChar(s); i >= 0 {
		x.err = &CharError{Offset: i, Text: s}
		return
	}
	x.err = xml.EscapeText(x.w, []byte(s))
}

// CharError reports text that XML 1.0 cannot represent.
type CharError struct {
	Offset int
	Text   string
}

func (e *CharError) Error() string {
	r, _ := utf8.DecodeRuneInString(e.Text[e.Offset:])
	if r == utf8.RuneError {
		return fmt.Sprintf("xmlsink: invalid UTF-8 at byte %d", e.Offset)
	}
	return fmt.Sprintf("xmlsink: character %U at byte %d is not allowed in XML", r, e.Offset)
}

// InvalidChar returns the byte offset of the first rune in s that is invalid
// UTF-8 or outside the XML 1.0 Char production, or -1.
func InvalidChar(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
		if !isXMLChar(r) {
			return i
		}
	}
	return -1
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09, r == 0x0A, r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func (x *Writer) newline(depth int) {
	if x.opt.Indent == "" {
		return
	}
	x.write("\n")
	x.write(strings.Repeat(x.opt.Indent, depth))
}

func (x *Writer) closePending() {
	if x.pending {
		x.write(">")
		x.pending = false
	}
}

func (x *Writer) lookup(prefix string) (string, bool) {
	for i := len(x.bindings) - 1; i >= 0; i-- {
		if x.bindings[i].prefix == prefix {
			return x.bindings[i].ns, true
		}
	}
	return "", prefix == ""
}

// StartDocument writes the optional XML declaration.
func (x *Writer) StartDocument() error {
	if x.opt.Declaration {
		x.write(`<?xml version="1.0" encoding="UTF-8"?>`)
		x.started = true
	}
	return x.err
}

// StartElement opens prefix:local, declaring ns for prefix when needed.
func (x *Writer) StartElement(prefix, local, ns string) error {
	if local == "" && x.err == nil {
		x.err = errEmptyName
	}
	x.closePending()
	if n := len(x.stack); n > 0 {
		x.stack[n-1].hasChildren = true
		x.newline(n)
	} else if x.started {
		x.newline(0)
	}
	x.started = true
	qname := local
	if prefix != "" {
		qname = prefix + ":" + local
	}
	x.write("<")
	x.write(qname)
	el := element{qname: qname}
	if cur, ok := x.lookup(prefix); !ok || cur != ns {
		attr := "xmlns"
		if prefix != "" {
			attr += ":" + prefix
		}
		x.attr(attr, ns)
		x.bindings = append(x.bindings, binding{prefix: prefix, ns: ns})
		el.bindings++
	}
	x.stack = append(x.stack, el)
	x.pending = true
	return x.err
}

// WriteAttribute adds an attribute to the element just started.
func (x *Writer) WriteAttribute(name, value string) error {
	if !x.pending && x.err == nil {
		x.err = errNoOpenTag
	}
	x.attr(name, value)
	return x.err
}

func (x *Writer) attr(name, value string) {
	x.write(" ")
	x.write(name)
	x.write(`="`)
	x.escape(value)
	x.write(`"`)
}

// WriteText writes escaped character data inside the current element.
func (x *Writer) WriteText(s string) error {
	x.closePending()
	if n := len(x.stack); n > 0 {
		x.stack[n-1].hasText = true
	}
	x.escape(s)
	return x.err
}

// EndElement closes the innermost open element; an element with no content
// is closed as <name/>.
func (x *Writer) EndElement() error {
	n := len(x.stack)
	if n == 0 {
		if x.err == nil {
			x.err = errUnbalanced
		}
		return x.err
	}
	el := x.stack[n-1]
	x.stack = x.stack[:n-1]
	x.bindings = x.bindings[:len(x.bindings)-el.bindings]
	if x.pending {
		x.write("/>")
		x.pending = false
		return x.err
	}
	if el.hasChildren && !el.hasText {
		x.newline(n - 1)
	}
	x.write("</")
	x.write(el.qname)
	x.write(">")
	return x.err
}

// EndDocument checks that every element was closed and flushes.
func (x *Writer) EndDocument() error {
	if len(x.stack) > 0 && x.err == nil {
		x.err = errOpenElements
	}
	if x.opt.Indent != "" {
		x.write("\n")
	}
	return x.Flush()
}

// Flush writes buffered output to the underlying writer.
func (x *Writer) Flush() error {
	if x.err == nil {
		x.err = x.w.Flush()
	}
	return x.err
}
