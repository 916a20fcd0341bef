package jxsmoln

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	eng "github.com/reoring/jxsmoln/internal/engine"
	"github.com/reoring/jxsmoln/internal/xmlsrc"
)

// DecodeValue reads one value from cur. The cursor may sit anywhere before
// the value's element; non-content nodes are skipped first. On success the
// cursor is left on whatever follows the element's end.
func DecodeValue(cur XMLCursor, opts ...DecodeOpt) (Value, error) {
	d := &decoder{cur: cur, opt: lastDecodeOpt(opts)}
	return d.value("")
}

// Unmarshal decodes a document holding exactly one value.
func Unmarshal(data []byte, opts ...DecodeOpt) (Value, error) {
	return DecodeDocument(XMLReader(bytes.NewReader(data)), opts...)
}

// DecodeDocument is DecodeValue followed by a check that nothing but
// comments, processing instructions or whitespace follows the value.
func DecodeDocument(cur XMLCursor, opts ...DecodeOpt) (Value, error) {
	d := &decoder{cur: cur, opt: lastDecodeOpt(opts)}
	v, err := d.value("")
	if err != nil {
		return Value{}, err
	}
	kind, err := d.moveToContent("")
	if err != nil {
		return Value{}, err
	}
	if kind != NodeNone {
		return Value{}, d.fail(CodeTrailingContent, "", "unexpected %s after the top-level value", d.cur.Node())
	}
	return v, nil
}

type decoder struct {
	cur   XMLCursor
	opt   DecodeOpt
	depth int
}

func (d *decoder) trace(op, path, msg string) {
	if d.opt.Trace == nil {
		return
	}
	d.opt.Trace.emit(TraceEvent{Op: op, Message: msg, Path: normPath(path), Depth: d.depth, Node: d.cur.Node()})
}

func (d *decoder) fail(code, path, format string, args ...any) *Error {
	n := d.cur.Node()
	e := &Error{Code: code, Path: normPath(path), Line: d.cur.Line(), Message: fmt.Sprintf(format, args...)}
	if n.Kind == NodeElement || n.Kind == NodeEndElement {
		e.Element = n.Local
	}
	return e
}

// cursorErr maps a failure of the XML cursor onto the error model.
func (d *decoder) cursorErr(err error, path string) error {
	if _, ok := AsError(err); ok {
		return err
	}
	var syn *xml.SyntaxError
	switch {
	case errors.Is(err, xmlsrc.ErrChildElement):
		return d.fail(CodeStructuralMismatch, path, "element <%s> inside a text-only element", d.cur.Node().Local)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syn) && syn.Msg == "unexpected EOF":
		e := d.fail(CodePrematureEnd, path, "unexpected end of XML input")
		e.Cause = err
		return e
	case syn != nil && (strings.Contains(syn.Msg, " closed by ") || strings.HasPrefix(syn.Msg, "unexpected end element")):
		e := d.fail(CodeStructuralMismatch, path, "mismatched end tag")
		e.Line, e.Cause = syn.Line, err
		return e
	}
	e := d.fail(CodeParseError, path, "malformed XML")
	e.Cause = err
	return e
}

func (d *decoder) moveToContent(path string) (NodeKind, error) {
	kind, err := d.cur.MoveToContent()
	if err != nil {
		return NodeNone, d.cursorErr(err, path)
	}
	d.trace("moveToContent", path, "")
	return kind, nil
}

func (d *decoder) read(path string) error {
	if _, err := d.cur.Read(); err != nil {
		return d.cursorErr(err, path)
	}
	return nil
}

// value dispatches on the element at the next content position.
func (d *decoder) value(path string) (Value, error) {
	kind, err := d.moveToContent(path)
	if err != nil {
		return Value{}, err
	}
	switch kind {
	case NodeElement:
	case NodeNone:
		return Value{}, d.fail(CodePrematureEnd, path, "unexpected end of XML content")
	default:
		return Value{}, d.fail(CodeStructuralMismatch, path, "expecting an XML element but found %s", d.cur.Node())
	}
	n := d.cur.Node()
	if n.Space != Namespace {
		return Value{}, d.fail(CodeNamespaceMismatch, path, "expecting the jxsmoln namespace on <%s>, but got '%s'", n.Local, n.Space)
	}

	switch n.Local {
	case TagMulti:
		return Value{}, d.fail(CodeMisplacedElement, path, "encountered a 'multi' element at an invalid position; multi-json is not supported here")
	case TagProp:
		return Value{}, d.fail(CodeMisplacedElement, path, "encountered a 'prop' element outside an object")
	case TagString:
		text, err := d.cur.ReadElementText()
		if err != nil {
			return Value{}, d.cursorErr(err, path)
		}
		d.trace("str", path, "")
		return String(text), nil
	case TagNumber:
		line := d.cur.Line()
		text, err := d.cur.ReadElementText()
		if err != nil {
			return Value{}, d.cursorErr(err, path)
		}
		d.trace("num", path, text)
		v, err := ParseNumber(text)
		if err != nil {
			e, _ := AsError(err)
			e.Path, e.Element, e.Line = normPath(path), TagNumber, line
			return Value{}, e
		}
		return v, nil
	case TagTrue, TagFalse, TagNull:
		if err := d.cur.Skip(); err != nil {
			return Value{}, d.cursorErr(err, path)
		}
		d.trace(n.Local, path, "")
		switch n.Local {
		case TagTrue:
			return Bool(true), nil
		case TagFalse:
			return Bool(false), nil
		}
		return Null(), nil
	case TagList:
		return d.list(path)
	case TagObject:
		return d.object(path)
	}
	return Value{}, d.fail(CodeUnrecognizedElement, path, "unrecognized jxsmoln element '%s'", n.Local)
}

func (d *decoder) enter(path string) error {
	d.depth++
	if d.opt.MaxDepth > 0 && d.depth > d.opt.MaxDepth {
		return d.fail(CodeTooDeep, path, "nesting exceeds %d levels", d.opt.MaxDepth)
	}
	return nil
}

// closeContainer validates the end element of a list, ob, prop or multi and
// moves past it.
func (d *decoder) closeContainer(tag, path string) error {
	end := d.cur.Node()
	if end.Local != tag || end.Space != Namespace {
		return d.fail(CodeStructuralMismatch, path, "mismatched end tag: expecting </%s> but found </%s>", tag, end.Local)
	}
	if err := d.read(path); err != nil {
		return err
	}
	d.trace("end "+tag, path, "")
	return nil
}

func (d *decoder) list(path string) (Value, error) {
	defer func() { d.depth-- }()
	if err := d.enter(path); err != nil {
		return Value{}, err
	}
	if d.cur.Node().Empty {
		if err := d.read(path); err != nil {
			return Value{}, err
		}
		d.trace("list", path, "empty")
		return Array(), nil
	}
	if err := d.read(path); err != nil {
		return Value{}, err
	}
	var items []Value
	for {
		kind, err := d.moveToContent(path)
		if err != nil {
			return Value{}, err
		}
		switch kind {
		case NodeEndElement:
			if err := d.closeContainer(TagList, path); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, items: items}, nil
		case NodeElement:
			item, err := d.value(eng.JoinPointer(path, strconv.Itoa(len(items))))
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		case NodeNone:
			return Value{}, d.fail(CodePrematureEnd, path, "unexpected end of input while reading a <list>")
		default:
			return Value{}, d.fail(CodeStructuralMismatch, path, "unexpected content in <list> element: expecting elements, but found %s", d.cur.Node())
		}
	}
}

func (d *decoder) object(path string) (Value, error) {
	defer func() { d.depth-- }()
	if err := d.enter(path); err != nil {
		return Value{}, err
	}
	if d.cur.Node().Empty {
		if err := d.read(path); err != nil {
			return Value{}, err
		}
		d.trace("ob", path, "empty")
		return Object(), nil
	}
	if err := d.read(path); err != nil {
		return Value{}, err
	}
	var ob objectBuilder
	for {
		kind, err := d.moveToContent(path)
		if err != nil {
			return Value{}, err
		}
		switch kind {
		case NodeEndElement:
			if err := d.closeContainer(TagObject, path); err != nil {
				return Value{}, err
			}
			return ob.value(), nil
		case NodeElement:
			n := d.cur.Node()
			if n.Space != Namespace {
				return Value{}, d.fail(CodeNamespaceMismatch, path, "expecting the jxsmoln namespace on <%s>, but got '%s'", n.Local, n.Space)
			}
			if n.Local != TagProp {
				return Value{}, d.fail(CodeStructuralMismatch, path, "expecting all child elements of <ob> to be <prop>, but encountered <%s>", n.Local)
			}
			if err := d.property(path, &ob); err != nil {
				return Value{}, err
			}
		case NodeNone:
			return Value{}, d.fail(CodePrematureEnd, path, "unexpected end of input while reading an <ob>")
		default:
			return Value{}, d.fail(CodeStructuralMismatch, path, "unexpected content in <ob> element: expecting <prop> elements, but found %s", d.cur.Node())
		}
	}
}

// property decodes one <prop> into ob. The cursor is on the prop start
// element and ends up past its end element.
func (d *decoder) property(path string, ob *objectBuilder) error {
	n := d.cur.Node()
	key, _ := n.Attr(AttrKey)
	if key == "" {
		return d.fail(CodeMissingAttribute, path, "missing or empty 'key' attribute on <prop> element")
	}
	child := eng.JoinPointer(path, key)
	if ob.has(key) {
		e := d.fail(CodeDuplicateKey, child, "duplicate property name '%s'", key)
		e.Key = key
		return e
	}
	emptyProp := func() error {
		e := d.fail(CodeEmptyProperty, child, "<prop> elements must not be empty; property '%s' has no value", key)
		e.Element, e.Key = TagProp, key
		return e
	}
	if n.Empty {
		return emptyProp()
	}
	if err := d.read(child); err != nil {
		return err
	}
	kind, err := d.moveToContent(child)
	if err != nil {
		return err
	}
	if kind == NodeEndElement {
		return emptyProp()
	}
	v, err := d.value(child)
	if err != nil {
		return err
	}
	kind, err = d.moveToContent(child)
	if err != nil {
		return err
	}
	if kind != NodeEndElement {
		e := d.fail(CodeStructuralMismatch, child, "expecting end of property after its single value, but found %s", d.cur.Node())
		e.Key = key
		return e
	}
	if err := d.closeContainer(TagProp, child); err != nil {
		return err
	}
	ob.add(key, v)
	return nil
}
