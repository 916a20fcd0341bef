// Package json is the default token driver, built on encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/jxsmoln/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	delims     eng.Delims
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON. Values
// following the first top-level value are reported as further tokens.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// NextToken returns io.EOF unwrapped once input ends between values.
func (s *jsonSource) NextToken() (eng.Token, error) {
	offset := s.dec.InputOffset()
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	tok := s.convert(raw)
	tok.Offset = offset
	return tok, nil
}

func (s *jsonSource) convert(raw json.Token) eng.Token {
	switch v := raw.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.delims.Open(true)
			return eng.Token{Kind: eng.KindBeginObject}
		case '[':
			s.delims.Open(false)
			return eng.Token{Kind: eng.KindBeginArray}
		case '}':
			s.delims.Close()
			return eng.Token{Kind: eng.KindEndObject}
		default:
			s.delims.Close()
			return eng.Token{Kind: eng.KindEndArray}
		}
	case string:
		return s.delims.Classify(v)
	}
	s.delims.Value()
	switch v := raw.(type) {
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v}
	case json.Number:
		return eng.Token{Kind: eng.KindNumber, Number: v.String()}
	case float64:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return eng.Token{Kind: eng.KindNull}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
