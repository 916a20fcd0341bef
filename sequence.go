package jxsmoln

import (
	"bytes"
	"iter"
)

// DecodeSequence returns a lazy, single-pass sequence of the values in a
// multi-document. When the content starts with a <multi> wrapper each child
// element is one item; any other element is decoded as the sole item. A
// document without content yields nothing.
//
// Each item is decoded only when the consumer asks for it, and the cursor is
// the only state carried between items. Ranging a second time yields
// nothing. After an error is yielded the sequence stops.
func DecodeSequence(cur XMLCursor, opts ...DecodeOpt) iter.Seq2[Value, error] {
	d := &decoder{cur: cur, opt: lastDecodeOpt(opts)}
	used := false
	return func(yield func(Value, error) bool) {
		if used {
			return
		}
		used = true
		d.sequence(yield)
	}
}

func (d *decoder) sequence(yield func(Value, error) bool) {
	kind, err := d.moveToContent("")
	if err != nil {
		yield(Value{}, err)
		return
	}
	switch kind {
	case NodeNone:
		return
	case NodeElement:
	default:
		yield(Value{}, d.fail(CodeStructuralMismatch, "", "expecting an XML element but found %s", d.cur.Node()))
		return
	}

	n := d.cur.Node()
	if n.Space != Namespace || n.Local != TagMulti {
		// Not wrapped: a plain single value is a one-item sequence.
		yield(d.value(""))
		return
	}
	if n.Empty {
		if err := d.read(""); err != nil {
			yield(Value{}, err)
		}
		return
	}
	if err := d.read(""); err != nil {
		yield(Value{}, err)
		return
	}
	for {
		kind, err := d.moveToContent("")
		if err != nil {
			yield(Value{}, err)
			return
		}
		switch kind {
		case NodeEndElement:
			if err := d.closeContainer(TagMulti, ""); err != nil {
				yield(Value{}, err)
			}
			return
		case NodeElement:
			v, err := d.value("")
			if !yield(v, err) || err != nil {
				return
			}
		case NodeNone:
			yield(Value{}, d.fail(CodePrematureEnd, "", "unexpected end of input while reading a <multi>"))
			return
		default:
			yield(Value{}, d.fail(CodeStructuralMismatch, "", "unexpected content in <multi> element: expecting elements, but found %s", d.cur.Node()))
			return
		}
	}
}

// DecodeAll drains DecodeSequence into a slice. It returns the first error
// and no values when any item fails.
func DecodeAll(cur XMLCursor, opts ...DecodeOpt) ([]Value, error) {
	var out []Value
	for v, err := range DecodeSequence(cur, opts...) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// UnmarshalAll decodes a multi-document held in memory.
func UnmarshalAll(data []byte, opts ...DecodeOpt) ([]Value, error) {
	return DecodeAll(XMLReader(bytes.NewReader(data)), opts...)
}
