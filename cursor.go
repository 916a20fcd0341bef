package jxsmoln

import (
	"io"

	"github.com/reoring/jxsmoln/internal/xmlsrc"
)

// Namespace is the jxsmoln XML namespace; every element of the vocabulary
// must be qualified by it.
const Namespace = "https://github.com/ttelcl/TteLcl.XmlTools/blob/main/jxsmoln/README.md"

// Element local names of the vocabulary.
const (
	TagString = "str"
	TagNumber = "num"
	TagTrue   = "true"
	TagFalse  = "false"
	TagNull   = "null"
	TagList   = "list"
	TagObject = "ob"
	TagProp   = "prop"
	TagMulti  = "multi"

	// AttrKey names the property key attribute on prop elements.
	AttrKey = "key"
)

// NodeKind classifies the node under an XMLCursor.
type NodeKind = xmlsrc.Kind

const (
	NodeNone       NodeKind = xmlsrc.KindNone
	NodeElement    NodeKind = xmlsrc.KindElement
	NodeEndElement NodeKind = xmlsrc.KindEndElement
	NodeText       NodeKind = xmlsrc.KindText
	NodeOther      NodeKind = xmlsrc.KindOther
)

// Node is a snapshot of an XMLCursor position.
type Node = xmlsrc.Node

// XMLCursor is the forward-only XML traversal the decoder is written
// against. Positions are never rewound.
type XMLCursor interface {
	// Node describes the current node.
	Node() Node
	// Read advances one node; false at end of input.
	Read() (bool, error)
	// MoveToContent skips whitespace, comments and processing instructions.
	MoveToContent() (NodeKind, error)
	// Skip consumes the current element subtree.
	Skip() error
	// ReadElementText consumes a text-only element and returns its text.
	ReadElementText() (string, error)
	// Line reports the input line for diagnostics (0 when unknown).
	Line() int
}

// XMLReader returns a cursor over XML read from r.
func XMLReader(r io.Reader) XMLCursor { return xmlsrc.New(r) }
