package jxsmoln

import (
	"io"

	"github.com/reoring/jxsmoln/internal/xmlsink"
)

// XMLWriter is the element stream the encoder writes to.
type XMLWriter interface {
	StartDocument() error
	StartElement(prefix, local, ns string) error
	WriteAttribute(name, value string) error
	WriteText(s string) error
	EndElement() error
	// EndDocument completes the document and flushes buffered output.
	EndDocument() error
}

// WriterOpt configures NewXMLWriter.
type WriterOpt struct {
	Indent      string // empty for compact output
	Declaration bool   // emit <?xml version="1.0" encoding="UTF-8"?>
}

// NewXMLWriter returns an XMLWriter producing text on w. Empty elements are
// written self-closing and the namespace is declared once on the root.
func NewXMLWriter(w io.Writer, opts ...WriterOpt) XMLWriter {
	var opt WriterOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return xmlsink.New(w, xmlsink.Options{Indent: opt.Indent, Declaration: opt.Declaration})
}
