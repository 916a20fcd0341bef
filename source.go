package jxsmoln

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	eng "github.com/reoring/jxsmoln/internal/engine"
	jsonsrc "github.com/reoring/jxsmoln/source/json"
)

// TokenKind enumerates JSON token kinds. Drivers outside this module may
// branch on values such as jxsmoln.TokenBeginObject.
type TokenKind = eng.Kind

const (
	TokenBeginObject TokenKind = eng.KindBeginObject
	TokenEndObject   TokenKind = eng.KindEndObject
	TokenBeginArray  TokenKind = eng.KindBeginArray
	TokenEndArray    TokenKind = eng.KindEndArray
	TokenKey         TokenKind = eng.KindKey
	TokenString      TokenKind = eng.KindString
	TokenNumber      TokenKind = eng.KindNumber
	TokenBool        TokenKind = eng.KindBool
	TokenNull        TokenKind = eng.KindNull
)

// Token describes a token in the input stream. Number keeps the source text;
// Offset records the byte position when known (-1 otherwise).
type Token = eng.Token

// Source is a forward-only JSON token cursor. NextToken returns io.EOF after
// the last token.
type Source interface {
	NextToken() (Token, error)
	// Location is the byte offset reached, or -1 when the driver cannot tell.
	Location() int64
}

// JSONDriver turns raw input into a Source. Drivers register themselves by
// name; one of them is active and backs JSONReader and JSONBytes.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

// stdDriver is the encoding/json driver, active until another is selected.
type stdDriver struct{}

func (stdDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (stdDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (stdDriver) Name() string                 { return "json" }

type registry struct {
	mu     sync.RWMutex
	active JSONDriver
	byName map[string]JSONDriver
}

var jsonDrivers = &registry{
	active: stdDriver{},
	byName: map[string]JSONDriver{"json": stdDriver{}},
}

func (r *registry) current() JSONDriver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

func (r *registry) update(fn func()) {
	r.mu.Lock()
	fn()
	r.mu.Unlock()
}

// SetJSONDriver makes d the active driver. A nil d is ignored.
func SetJSONDriver(d JSONDriver) {
	if d != nil {
		jsonDrivers.update(func() { jsonDrivers.active = d })
	}
}

// UseDefaultJSONDriver reactivates the encoding/json driver.
func UseDefaultJSONDriver() { SetJSONDriver(stdDriver{}) }

// RegisterJSONDriver makes d available to DriverByName under d.Name().
// Driver packages call it from init.
func RegisterJSONDriver(d JSONDriver) {
	if d != nil {
		jsonDrivers.update(func() { jsonDrivers.byName[d.Name()] = d })
	}
}

// DriverByName returns a registered driver.
func DriverByName(name string) (JSONDriver, error) {
	jsonDrivers.mu.RLock()
	defer jsonDrivers.mu.RUnlock()
	if d, ok := jsonDrivers.byName[name]; ok {
		return d, nil
	}
	known := make([]string, 0, len(jsonDrivers.byName))
	for n := range jsonDrivers.byName {
		known = append(known, n)
	}
	sort.Strings(known)
	return nil, fmt.Errorf("jxsmoln: unknown driver %q (registered: %s)", name, strings.Join(known, ", "))
}

// JSONReader reads JSON from r with the active driver.
func JSONReader(r io.Reader) Source { return jsonDrivers.current().NewReader(r) }

// JSONBytes reads JSON from b with the active driver.
func JSONBytes(b []byte) Source { return jsonDrivers.current().NewBytes(b) }

// ValueSource walks an in-memory Value as a token stream without
// materializing the tokens.
func ValueSource(v Value) Source { return &valueSource{root: v} }

type valueFrame struct {
	v       Value
	next    int
	keySent bool
}

type valueSource struct {
	root  Value
	begun bool
	stack []valueFrame
}

func (s *valueSource) NextToken() (Token, error) {
	if !s.begun {
		s.begun = true
		return s.open(s.root)
	}
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		if top.v.kind == KindArray {
			if top.next < len(top.v.items) {
				it := top.v.items[top.next]
				top.next++
				return s.open(it)
			}
			s.stack = s.stack[:len(s.stack)-1]
			return Token{Kind: TokenEndArray, Offset: -1}, nil
		}
		if top.next < len(top.v.members) {
			m := top.v.members[top.next]
			if !top.keySent {
				top.keySent = true
				return Token{Kind: TokenKey, String: m.Key, Offset: -1}, nil
			}
			top.keySent = false
			top.next++
			return s.open(m.Value)
		}
		s.stack = s.stack[:len(s.stack)-1]
		return Token{Kind: TokenEndObject, Offset: -1}, nil
	}
	return Token{}, io.EOF
}

func (s *valueSource) open(v Value) (Token, error) {
	switch v.kind {
	case KindArray:
		s.stack = append(s.stack, valueFrame{v: v})
		return Token{Kind: TokenBeginArray, Offset: -1}, nil
	case KindObject:
		s.stack = append(s.stack, valueFrame{v: v})
		return Token{Kind: TokenBeginObject, Offset: -1}, nil
	case KindString:
		return Token{Kind: TokenString, String: v.str, Offset: -1}, nil
	case KindBoolean:
		return Token{Kind: TokenBool, Bool: v.b, Offset: -1}, nil
	case KindInteger, KindReal:
		if v.kind == KindReal && (math.IsInf(v.f, 0) || math.IsNaN(v.f)) {
			return Token{}, &Error{Code: CodeNumberFormat, Text: formatReal(v.f), Message: "non-finite real cannot be encoded"}
		}
		return Token{Kind: TokenNumber, Number: numberText(v), Offset: -1}, nil
	}
	return Token{Kind: TokenNull, Offset: -1}, nil
}

func (s *valueSource) Location() int64 { return -1 }
