package jxsmoln

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	eng "github.com/reoring/jxsmoln/internal/engine"
)

// MarshalJSON writes v as JSON with object members in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBoolean:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInteger, KindReal:
		if v.kind == KindReal && (math.IsInf(v.f, 0) || math.IsNaN(v.f)) {
			return fmt.Errorf("jxsmoln: unsupported number %v", v.f)
		}
		buf.WriteString(numberText(v))
	case KindString:
		return appendQuoted(buf, v.str)
	case KindArray:
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendQuoted(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func appendQuoted(buf *bytes.Buffer, s string) error {
	b, err := gojson.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// ReadJSONValue consumes exactly one value from src and builds a Value.
// Numbers follow ParseNumber; duplicate object keys are rejected.
func ReadJSONValue(src Source) (Value, error) {
	tc := newTokenCursor(src)
	more, err := tc.advance()
	if err != nil {
		return Value{}, err
	}
	if !more {
		return Value{}, &Error{Code: CodePrematureEnd, Path: "/", Message: "no JSON value in input"}
	}
	v, err := readTokenValue(tc, "")
	if err != nil {
		return Value{}, err
	}
	if tc.more {
		return Value{}, &Error{Code: CodeTrailingContent, Path: "/", Message: "trailing content after top-level value: " + tc.tok.Kind.String()}
	}
	return v, nil
}

// readTokenValue builds the value at the cursor and leaves the cursor on the
// token following it.
func readTokenValue(tc *tokenCursor, path string) (Value, error) {
	tok := tc.tok
	switch tok.Kind {
	case TokenString:
		return String(tok.String), tc.step()
	case TokenBool:
		return Bool(tok.Bool), tc.step()
	case TokenNull:
		return Null(), tc.step()
	case TokenNumber:
		n, err := ParseNumber(tok.Number)
		if err != nil {
			return Value{}, withPath(err, path)
		}
		return n, tc.step()
	case TokenBeginArray:
		var items []Value
		if err := tc.step(); err != nil {
			return Value{}, err
		}
		for {
			if !tc.more {
				return Value{}, &Error{Code: CodePrematureEnd, Path: normPath(path), Message: "unexpected end of input inside array"}
			}
			if tc.tok.Kind == TokenEndArray {
				return Value{kind: KindArray, items: items}, tc.step()
			}
			it, err := readTokenValue(tc, eng.JoinPointer(path, strconv.Itoa(len(items))))
			if err != nil {
				return Value{}, err
			}
			items = append(items, it)
		}
	case TokenBeginObject:
		var ob objectBuilder
		if err := tc.step(); err != nil {
			return Value{}, err
		}
		for {
			if !tc.more {
				return Value{}, &Error{Code: CodePrematureEnd, Path: normPath(path), Message: "unexpected end of input inside object"}
			}
			if tc.tok.Kind == TokenEndObject {
				return ob.value(), tc.step()
			}
			if tc.tok.Kind != TokenKey {
				return Value{}, unexpectedToken(tc.tok, path, "expecting a property name")
			}
			key := tc.tok.String
			child := eng.JoinPointer(path, key)
			if ob.has(key) {
				return Value{}, &Error{Code: CodeDuplicateKey, Path: child, Key: key, Message: "duplicate property name '" + key + "'"}
			}
			if err := tc.step(); err != nil {
				return Value{}, err
			}
			if !tc.more {
				return Value{}, &Error{Code: CodePrematureEnd, Path: child, Key: key, Message: "missing value for property '" + key + "'"}
			}
			v, err := readTokenValue(tc, child)
			if err != nil {
				return Value{}, err
			}
			ob.add(key, v)
		}
	}
	return Value{}, unexpectedToken(tok, path, "expecting a value")
}

// tokenCursor gives a Source the "current token / advance" shape used by the
// recursive walkers: tok is valid while more is true.
type tokenCursor struct {
	src  Source
	tok  Token
	more bool
}

func newTokenCursor(src Source) *tokenCursor { return &tokenCursor{src: src} }

// advance moves to the next token and reports whether one exists.
func (c *tokenCursor) advance() (bool, error) {
	tok, err := c.src.NextToken()
	if errors.Is(err, io.EOF) {
		c.tok, c.more = Token{}, false
		return false, nil
	}
	if err != nil {
		c.more = false
		return false, wrapSourceError(err)
	}
	c.tok, c.more = tok, true
	return true, nil
}

func (c *tokenCursor) step() error {
	_, err := c.advance()
	return err
}
