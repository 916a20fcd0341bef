package jxsmoln

import (
	"bytes"
	"fmt"
	"strconv"

	eng "github.com/reoring/jxsmoln/internal/engine"
	"github.com/reoring/jxsmoln/internal/xmlsink"
)

// EncodeDocument writes the single JSON value produced by src as a jxsmoln
// document. src must be fresh; after the value it must be exhausted, and any
// further token fails with CodeUnexpectedToken.
func EncodeDocument(src Source, w XMLWriter, opts ...EncodeOpt) error {
	e := newEncoder(src, w, lastEncodeOpt(opts))
	if err := w.StartDocument(); err != nil {
		return writeErr(err)
	}
	more, err := e.tc.advance()
	if err != nil {
		return err
	}
	e.trace("document", "", "first token")
	if !more {
		return &Error{Code: CodePrematureEnd, Path: "/", Message: "no JSON value to encode"}
	}
	more, err = e.writeValue("")
	if err != nil {
		return err
	}
	if more {
		return unexpectedToken(e.tc.tok, "", "trailing content after top-level value")
	}
	return writeErr(w.EndDocument())
}

// EncodeSequence would write several JSON values as a <multi> document. It
// is not supported and always fails without touching src or w.
func EncodeSequence(src Source, w XMLWriter, opts ...EncodeOpt) error {
	return &Error{Code: CodeUnsupportedFeature, Path: "/", Element: TagMulti, Message: "encoding JSON into multi-document XML is not supported"}
}

// EncodeValue writes an in-memory Value as a jxsmoln document.
func EncodeValue(v Value, w XMLWriter, opts ...EncodeOpt) error {
	return EncodeDocument(ValueSource(v), w, opts...)
}

// Marshal renders v as a compact jxsmoln document.
func Marshal(v Value, opts ...EncodeOpt) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeValue(v, NewXMLWriter(&buf), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but puts each element on its own line.
func MarshalIndent(v Value, indent string, opts ...EncodeOpt) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeValue(v, NewXMLWriter(&buf, WriterOpt{Indent: indent}), opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	tc     *tokenCursor
	w      XMLWriter
	opt    EncodeOpt
	prefix string
	depth  int
}

func newEncoder(src Source, w XMLWriter, opt EncodeOpt) *encoder {
	eo := eng.EnforceOptions{OnDuplicate: toEngineDup(opt.OnDuplicateKey), MaxDepth: opt.MaxDepth}
	if opt.OnWarning != nil {
		eo.Sink = func(v eng.Violation) {
			opt.OnWarning(&Error{Code: v.Code, Path: v.Path, Key: v.Key, Message: v.Message})
		}
	}
	return &encoder{
		tc:     newTokenCursor(eng.WrapWithEnforcement(src, eo)),
		w:      w,
		opt:    opt,
		prefix: opt.prefix(),
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case SeverityWarn:
		return eng.DupWarn
	case SeverityIgnore:
		return eng.DupIgnore
	default:
		return eng.DupError
	}
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("jxsmoln: writing XML: %w", err)
}

// checkChars rejects text the writer would otherwise have to replace, which
// would not decode back to the same string.
func checkChars(s, path, key, element string) error {
	i := xmlsink.InvalidChar(s)
	if i < 0 {
		return nil
	}
	what := "string"
	if key != "" {
		what = "property name"
	}
	return &Error{
		Code:    CodeInvalidCharacter,
		Path:    normPath(path),
		Element: element,
		Key:     key,
		Text:    s,
		Message: fmt.Sprintf("%s contains a character XML cannot represent at byte %d", what, i),
	}
}

func (e *encoder) trace(op, path, msg string) {
	if e.opt.Trace == nil {
		return
	}
	e.opt.Trace.emit(TraceEvent{Op: op, Message: msg, Path: normPath(path), Depth: e.depth, Token: e.tc.tok, More: e.tc.more})
}

func (e *encoder) start(tag string) error {
	return writeErr(e.w.StartElement(e.prefix, tag, Namespace))
}

func (e *encoder) end() error { return writeErr(e.w.EndElement()) }

// leaf writes <tag>text</tag>, or <tag/> when text is empty.
func (e *encoder) leaf(tag, text string) error {
	if err := e.start(tag); err != nil {
		return err
	}
	if text != "" {
		if err := e.w.WriteText(text); err != nil {
			return writeErr(err)
		}
	}
	return e.end()
}

// advanceWithin moves past the current token, failing when the input ends while
// the value at path is still open.
func (e *encoder) advanceWithin(path, what string) error {
	more, err := e.tc.advance()
	if err != nil {
		return err
	}
	e.trace("advance", path, "")
	if !more {
		return &Error{Code: CodePrematureEnd, Path: normPath(path), Message: "unexpected end of JSON input inside " + what}
	}
	return nil
}

// writeValue writes the value starting at the current token and advances
// past it. It reports whether further tokens remain.
func (e *encoder) writeValue(path string) (bool, error) {
	tok := e.tc.tok
	switch tok.Kind {
	case TokenNumber:
		n, err := ParseNumber(tok.Number)
		if err != nil {
			return false, withPath(err, path)
		}
		if err := e.leaf(TagNumber, numberText(n)); err != nil {
			return false, err
		}
	case TokenString:
		if err := checkChars(tok.String, path, "", TagString); err != nil {
			return false, err
		}
		if err := e.leaf(TagString, tok.String); err != nil {
			return false, err
		}
	case TokenBool:
		tag := TagFalse
		if tok.Bool {
			tag = TagTrue
		}
		if err := e.leaf(tag, ""); err != nil {
			return false, err
		}
	case TokenNull:
		if err := e.leaf(TagNull, ""); err != nil {
			return false, err
		}
	case TokenBeginObject:
		if err := e.object(path); err != nil {
			return false, err
		}
	case TokenBeginArray:
		if err := e.array(path); err != nil {
			return false, err
		}
	default:
		return false, unexpectedToken(tok, path, "expecting a value")
	}
	more, err := e.tc.advance()
	if err != nil {
		return false, err
	}
	e.trace("value", path, "done")
	return more, nil
}

// object writes <ob> and its properties; it returns with the cursor on the
// end-of-object token.
func (e *encoder) object(path string) error {
	e.depth++
	defer func() { e.depth-- }()
	if err := e.start(TagObject); err != nil {
		return err
	}
	if err := e.advanceWithin(path, "object"); err != nil {
		return err
	}
	for e.tc.tok.Kind != TokenEndObject {
		if e.tc.tok.Kind != TokenKey {
			return unexpectedToken(e.tc.tok, path, "expecting a property name or end of object")
		}
		key := e.tc.tok.String
		child := eng.JoinPointer(path, key)
		if key == "" {
			return &Error{Code: CodeMissingAttribute, Path: child, Element: TagProp, Message: "property names must be non-empty to be written as a 'key' attribute"}
		}
		if err := checkChars(key, child, key, TagProp); err != nil {
			return err
		}
		if err := e.start(TagProp); err != nil {
			return err
		}
		if err := e.w.WriteAttribute(AttrKey, key); err != nil {
			return writeErr(err)
		}
		if err := e.advanceWithin(child, "property '"+key+"'"); err != nil {
			return err
		}
		more, err := e.writeValue(child)
		if err != nil {
			return err
		}
		if err := e.end(); err != nil {
			return err
		}
		if !more {
			return &Error{Code: CodePrematureEnd, Path: normPath(path), Message: "unexpected end of JSON input inside object"}
		}
	}
	return e.end()
}

// array writes <list> and its items; it returns with the cursor on the
// end-of-array token.
func (e *encoder) array(path string) error {
	e.depth++
	defer func() { e.depth-- }()
	if err := e.start(TagList); err != nil {
		return err
	}
	if err := e.advanceWithin(path, "array"); err != nil {
		return err
	}
	for i := 0; e.tc.tok.Kind != TokenEndArray; i++ {
		more, err := e.writeValue(eng.JoinPointer(path, strconv.Itoa(i)))
		if err != nil {
			return err
		}
		if !more {
			return &Error{Code: CodePrematureEnd, Path: normPath(path), Message: "unexpected end of JSON input inside array"}
		}
	}
	return e.end()
}
