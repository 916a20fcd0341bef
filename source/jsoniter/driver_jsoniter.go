// Package jsoniter provides a token driver backed by json-iterator. Each
// top-level value is scanned with the iterator callbacks into a token buffer
// that is then replayed; importing the package registers it as "jsoniter".
package jsoniter

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	jxsmoln "github.com/reoring/jxsmoln"
	eng "github.com/reoring/jxsmoln/internal/engine"
)

var config = jsoniter.Config{
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

func init() { jxsmoln.RegisterJSONDriver(Driver()) }

// Driver returns a jxsmoln.JSONDriver backed by json-iterator.
func Driver() jxsmoln.JSONDriver { return driverJsoniter{} }

type driverJsoniter struct{}

func (driverJsoniter) NewReader(r io.Reader) jxsmoln.Source { return NewReader(r) }
func (driverJsoniter) NewBytes(b []byte) jxsmoln.Source     { return NewBytes(b) }
func (driverJsoniter) Name() string                         { return "jsoniter" }

type source struct {
	iter *jsoniter.Iterator
	buf  []eng.Token
	pos  int
}

// NewReader wraps an io.Reader into an engine.TokenSource using json-iterator.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{iter: jsoniter.Parse(config, r, 512)}
}

// NewBytes wraps a byte slice into an engine.TokenSource using json-iterator.
func NewBytes(b []byte) eng.TokenSource {
	return &source{iter: jsoniter.ParseBytes(config, b)}
}

func (s *source) NextToken() (eng.Token, error) {
	if s.pos == len(s.buf) {
		s.buf, s.pos = s.buf[:0], 0
		if err := s.scan(); err != nil {
			return eng.Token{}, err
		}
	}
	t := s.buf[s.pos]
	s.pos++
	return t, nil
}

// scan buffers the tokens of the next top-level value.
func (s *source) scan() error {
	if s.iter.WhatIsNext() == jsoniter.InvalidValue {
		// The iterator records io.EOF only once the input is exhausted; a nil
		// Error means a byte that cannot start a value.
		if errors.Is(s.iter.Error, io.EOF) {
			return io.EOF
		}
		if s.iter.Error == nil {
			s.iter.ReportError("scan", "expecting a JSON value")
		}
		return s.iter.Error
	}
	s.iter.Error = nil
	if err := s.value(); err != nil {
		return err
	}
	return s.error()
}

func (s *source) error() error {
	if err := s.iter.Error; err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *source) emit(t eng.Token) {
	t.Offset = -1
	s.buf = append(s.buf, t)
}

func (s *source) value() error {
	switch vt := s.iter.WhatIsNext(); vt {
	case jsoniter.StringValue:
		s.emit(eng.Token{Kind: eng.KindString, String: s.iter.ReadString()})
	case jsoniter.NumberValue:
		s.emit(eng.Token{Kind: eng.KindNumber, Number: string(s.iter.ReadNumber())})
	case jsoniter.BoolValue:
		s.emit(eng.Token{Kind: eng.KindBool, Bool: s.iter.ReadBool()})
	case jsoniter.NilValue:
		s.iter.ReadNil()
		s.emit(eng.Token{Kind: eng.KindNull})
	case jsoniter.ArrayValue:
		var err error
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		ok := s.iter.ReadArrayCB(func(*jsoniter.Iterator) bool {
			err = s.value()
			return err == nil
		})
		if err != nil {
			return err
		}
		if !ok {
			return s.malformed("array")
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
	case jsoniter.ObjectValue:
		var err error
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		ok := s.iter.ReadMapCB(func(_ *jsoniter.Iterator, field string) bool {
			s.emit(eng.Token{Kind: eng.KindKey, String: field})
			err = s.value()
			return err == nil
		})
		if err != nil {
			return err
		}
		if !ok {
			return s.malformed("object")
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
	default:
		if err := s.error(); err != nil {
			return err
		}
		return fmt.Errorf("jsoniter: unexpected value type: %v", vt)
	}
	return s.error()
}

// malformed reports a container the iterator gave up on, including input
// that ends before the container is closed.
func (s *source) malformed(what string) error {
	if err := s.error(); err != nil {
		return err
	}
	return fmt.Errorf("jsoniter: malformed %s: %w", what, io.ErrUnexpectedEOF)
}

func (s *source) Location() int64 { return -1 }
