// Package gojson provides a token driver backed by goccy/go-json. Importing
// the package registers it under the name "gojson".
package gojson

import (
	"bytes"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	jxsmoln "github.com/reoring/jxsmoln"
	eng "github.com/reoring/jxsmoln/internal/engine"
)

func init() { jxsmoln.RegisterJSONDriver(Driver()) }

// Driver returns a jxsmoln.JSONDriver backed by goccy/go-json.
func Driver() jxsmoln.JSONDriver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) jxsmoln.Source { return NewReader(r) }
func (driver) NewBytes(b []byte) jxsmoln.Source     { return NewBytes(b) }
func (driver) Name() string                         { return "gojson" }

type source struct {
	dec    *gojson.Decoder
	delims eng.Delims
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	var tok eng.Token
	switch v := raw.(type) {
	case gojson.Delim:
		switch v {
		case '{', '[':
			s.delims.Open(v == '{')
			tok.Kind = eng.KindBeginArray
			if v == '{' {
				tok.Kind = eng.KindBeginObject
			}
		default:
			s.delims.Close()
			tok.Kind = eng.KindEndArray
			if v == '}' {
				tok.Kind = eng.KindEndObject
			}
		}
	case string:
		tok = s.delims.Classify(v)
	case bool:
		s.delims.Value()
		tok = eng.Token{Kind: eng.KindBool, Bool: v}
	case gojson.Number:
		s.delims.Value()
		tok = eng.Token{Kind: eng.KindNumber, Number: string(v)}
	case float64:
		s.delims.Value()
		tok = eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}
	default:
		s.delims.Value()
		tok = eng.Token{Kind: eng.KindNull}
	}
	tok.Offset = -1
	return tok, nil
}

func (s *source) Location() int64 { return -1 }
