// Package stream cuts a token stream holding several top-level JSON values
// into one bounded source per value.
package stream

import (
	"errors"
	"io"

	eng "github.com/reoring/jxsmoln/internal/engine"
)

// ValueSource streams the tokens of exactly one value and then reports
// io.EOF. The first token has already been read from inner.
type ValueSource struct {
	inner  eng.TokenSource
	first  eng.Token
	served bool
	depth  int
	done   bool
}

func newValueSource(inner eng.TokenSource, first eng.Token) *ValueSource {
	return &ValueSource{inner: inner, first: first}
}

func (v *ValueSource) NextToken() (eng.Token, error) {
	if v.done {
		return eng.Token{}, io.EOF
	}
	tok := v.first
	if v.served {
		var err error
		if tok, err = v.inner.NextToken(); err != nil {
			if errors.Is(err, io.EOF) {
				// the value was cut short
				return eng.Token{}, io.ErrUnexpectedEOF
			}
			return eng.Token{}, err
		}
	}
	v.served = true
	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		v.depth++
	case eng.KindEndObject, eng.KindEndArray:
		v.depth--
	}
	if v.depth <= 0 {
		v.done = true
	}
	return tok, nil
}

func (v *ValueSource) Location() int64 { return v.inner.Location() }

// Splitter hands out the top-level values of inner one at a time.
type Splitter struct {
	inner eng.TokenSource
	cur   *ValueSource
}

// NewSplitter returns a Splitter over inner.
func NewSplitter(inner eng.TokenSource) *Splitter { return &Splitter{inner: inner} }

// Next returns a source for the next top-level value, or false once inner is
// exhausted. Tokens the caller left unread in the previous value are
// discarded first.
func (s *Splitter) Next() (*ValueSource, bool, error) {
	if s.cur != nil {
		for !s.cur.done {
			if _, err := s.cur.NextToken(); err != nil {
				return nil, false, err
			}
		}
	}
	first, err := s.inner.NextToken()
	if errors.Is(err, io.EOF) {
		s.cur = nil
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.cur = newValueSource(s.inner, first)
	return s.cur, true, nil
}
