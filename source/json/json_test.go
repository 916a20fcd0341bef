package json

import (
	"errors"
	"io"
	"testing"

	eng "github.com/reoring/jxsmoln/internal/engine"
)

func TestSource_Tokens(t *testing.T) {
	src := NewBytes([]byte(`{"k":["v",1.50,true,null],"o":{}}`))
	want := []eng.Token{
		{Kind: eng.KindBeginObject, Offset: 0},
		{Kind: eng.KindKey, String: "k"},
		{Kind: eng.KindBeginArray},
		{Kind: eng.KindString, String: "v"},
		{Kind: eng.KindNumber, Number: "1.50"},
		{Kind: eng.KindBool, Bool: true},
		{Kind: eng.KindNull},
		{Kind: eng.KindEndArray},
		{Kind: eng.KindKey, String: "o"},
		{Kind: eng.KindBeginObject},
		{Kind: eng.KindEndObject},
		{Kind: eng.KindEndObject},
	}
	for i, w := range want {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok.Kind != w.Kind || tok.String != w.String || tok.Number != w.Number || tok.Bool != w.Bool {
			t.Fatalf("token %d = %+v, want %+v", i, tok, w)
		}
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if src.Location() <= 0 {
		t.Fatalf("expected a byte offset, got %d", src.Location())
	}
}

// Strings in value position are values, not keys.
func TestSource_KeyValueAlternation(t *testing.T) {
	src := NewBytes([]byte(`{"a":"b","c":["d"],"e":"f"}`))
	var kinds []eng.Kind
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindBeginArray, eng.KindString, eng.KindEndArray,
		eng.KindKey, eng.KindString,
		eng.KindEndObject,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestSource_SyntaxError(t *testing.T) {
	src := NewBytes([]byte(`[1 2]`))
	var err error
	for err == nil {
		_, err = src.NextToken()
	}
	if errors.Is(err, io.EOF) {
		t.Fatalf("expected a syntax error, got EOF")
	}
}
