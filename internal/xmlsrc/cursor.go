// Package xmlsrc implements a forward-only XML node cursor over encoding/xml.
// The cursor resolves namespaces, classifies nodes into content and
// non-content, and knows whether the current element has any content at all.
package xmlsrc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind classifies the node under the cursor.
type Kind int

const (
	// KindNone means no node: before the first Read or after the input ended.
	KindNone Kind = iota
	KindElement
	KindEndElement
	KindText
	// KindOther covers comments, processing instructions and directives.
	KindOther
)

var kindNames = [...]string{
	KindNone:       "none",
	KindElement:    "element",
	KindEndElement: "end-element",
	KindText:       "text",
	KindOther:      "other",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is a snapshot of the cursor position.
type Node struct {
	Kind  Kind
	Space string // resolved namespace URI
	Local string
	Attrs []xml.Attr
	Text  string
	// Empty is set on an element that is closed without any content in
	// between (<x/> or <x></x>).
	Empty bool
	Line  int
}

// IsWhitespace reports whether a text node holds only XML whitespace.
func (n Node) IsWhitespace() bool {
	return n.Kind == KindText && strings.Trim(n.Text, " \t\r\n") == ""
}

// IsContent reports whether the node is meaningful for parsing.
func (n Node) IsContent() bool {
	switch n.Kind {
	case KindElement, KindEndElement:
		return true
	case KindText:
		return !n.IsWhitespace()
	}
	return false
}

// Attr returns the value of the unqualified attribute local.
func (n Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n Node) String() string {
	switch n.Kind {
	case KindElement:
		if n.Empty {
			return fmt.Sprintf("<{%s}%s/>", n.Space, n.Local)
		}
		return fmt.Sprintf("<{%s}%s>", n.Space, n.Local)
	case KindEndElement:
		return fmt.Sprintf("</{%s}%s>", n.Space, n.Local)
	case KindText:
		return fmt.Sprintf("text %q", n.Text)
	}
	return n.Kind.String()
}

// ErrChildElement is returned by ReadElementText when a text-only element
// contains a child element.
var ErrChildElement = errors.New("xmlsrc: element content must be text only")

// Cursor is a forward-only cursor. It holds at most one token of lookahead,
// used to detect empty elements.
type Cursor struct {
	dec     *xml.Decoder
	cur     Node
	started bool

	peeked  bool
	peekTok xml.Token
	peekErr error
	// skipEnd is set while cur is an empty element whose end token sits in
	// the lookahead slot.
	skipEnd bool
}

// New creates a cursor reading from r.
func New(r io.Reader) *Cursor {
	return &Cursor{dec: xml.NewDecoder(r)}
}

// Node returns the current node.
func (c *Cursor) Node() Node { return c.cur }

// Line returns the current input line.
func (c *Cursor) Line() int {
	line, _ := c.dec.InputPos()
	return line
}

// Offset returns the current input byte offset.
func (c *Cursor) Offset() int64 { return c.dec.InputOffset() }

func (c *Cursor) next() (xml.Token, error) {
	if c.peeked {
		c.peeked = false
		tok, err := c.peekTok, c.peekErr
		c.peekTok, c.peekErr = nil, nil
		return tok, err
	}
	tok, err := c.dec.Token()
	if err != nil {
		return nil, err
	}
	return xml.CopyToken(tok), nil
}

func (c *Cursor) peek() (xml.Token, error) {
	if !c.peeked {
		tok, err := c.dec.Token()
		if err == nil {
			tok = xml.CopyToken(tok)
		}
		c.peekTok, c.peekErr, c.peeked = tok, err, true
	}
	return c.peekTok, c.peekErr
}

// Read advances to the next node. Reading from an empty element moves past
// its end as well. It returns false once the input is exhausted.
func (c *Cursor) Read() (bool, error) {
	c.started = true
	if c.skipEnd {
		c.skipEnd = false
		if _, err := c.next(); err != nil {
			return false, c.fail(err)
		}
	}
	line := c.Line()
	tok, err := c.next()
	if errors.Is(err, io.EOF) {
		c.cur = Node{Kind: KindNone, Line: line}
		return false, nil
	}
	if err != nil {
		return false, c.fail(err)
	}
	switch t := tok.(type) {
	case xml.StartElement:
		c.cur = Node{Kind: KindElement, Space: t.Name.Space, Local: t.Name.Local, Attrs: t.Attr, Line: line}
		nt, err := c.peek()
		if err == nil {
			if _, ok := nt.(xml.EndElement); ok {
				c.cur.Empty = true
				c.skipEnd = true
			}
		}
	case xml.EndElement:
		c.cur = Node{Kind: KindEndElement, Space: t.Name.Space, Local: t.Name.Local, Line: line}
	case xml.CharData:
		c.cur = Node{Kind: KindText, Text: string(t), Line: line}
	default:
		c.cur = Node{Kind: KindOther, Line: line}
	}
	return true, nil
}

func (c *Cursor) fail(err error) error {
	c.cur = Node{Kind: KindNone, Line: c.Line()}
	return err
}

// MoveToContent skips non-content nodes and returns the kind of the node it
// stops on. On a fresh cursor it first reads the initial node.
func (c *Cursor) MoveToContent() (Kind, error) {
	if !c.started {
		if _, err := c.Read(); err != nil {
			return KindNone, err
		}
	}
	for c.cur.Kind != KindNone && !c.cur.IsContent() {
		if _, err := c.Read(); err != nil {
			return KindNone, err
		}
	}
	return c.cur.Kind, nil
}

// Skip consumes the current element with its subtree and moves to the node
// after it. On any other node it behaves like Read.
func (c *Cursor) Skip() error {
	if c.cur.Kind != KindElement || c.cur.Empty {
		_, err := c.Read()
		return err
	}
	depth := 0
	for {
		if c.cur.Kind == KindElement && !c.cur.Empty {
			depth++
		}
		ok, err := c.Read()
		if err != nil {
			return err
		}
		if !ok {
			return io.ErrUnexpectedEOF
		}
		if c.cur.Kind == KindEndElement {
			depth--
			if depth == 0 {
				_, err := c.Read()
				return err
			}
		}
	}
}

// ReadElementText returns the concatenated text of the current element and
// moves past its end. Comments and processing instructions are ignored; a
// child element fails with ErrChildElement.
func (c *Cursor) ReadElementText() (string, error) {
	if c.cur.Kind != KindElement {
		return "", fmt.Errorf("xmlsrc: ReadElementText on %s node", c.cur.Kind)
	}
	if c.cur.Empty {
		_, err := c.Read()
		return "", err
	}
	var b strings.Builder
	for {
		ok, err := c.Read()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		switch c.cur.Kind {
		case KindText:
			b.WriteString(c.cur.Text)
		case KindElement:
			return "", ErrChildElement
		case KindEndElement:
			_, err := c.Read()
			return b.String(), err
		}
	}
}
