package engine

import (
	"errors"
	"io"
	"testing"
)

// sliceSource replays fixed tokens.
type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos * 10) }

func obj(keys ...string) []Token {
	toks := []Token{{Kind: KindBeginObject}}
	for _, k := range keys {
		toks = append(toks, Token{Kind: KindKey, String: k}, Token{Kind: KindNull})
	}
	return append(toks, Token{Kind: KindEndObject})
}

func drainErr(src TokenSource) error {
	for {
		_, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func TestWrap_DisabledReturnsInner(t *testing.T) {
	inner := &sliceSource{}
	if got := WrapWithEnforcement(inner, EnforceOptions{}); got != TokenSource(inner) {
		t.Fatalf("expected inner source when nothing is enforced")
	}
}

func TestWrap_DuplicateError(t *testing.T) {
	src := WrapWithEnforcement(&sliceSource{toks: obj("a", "b", "a")}, EnforceOptions{OnDuplicate: DupError})
	err := drainErr(src)
	var ve *ViolationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ViolationError, got %v", err)
	}
	if ve.Code != "duplicate_key" || ve.Path != "/a" || ve.Key != "a" {
		t.Fatalf("unexpected violation: %+v", ve.Violation)
	}
}

func TestWrap_DuplicateWarn(t *testing.T) {
	var got []Violation
	src := WrapWithEnforcement(&sliceSource{toks: obj("x", "x", "x")}, EnforceOptions{OnDuplicate: DupWarn, Sink: func(v Violation) { got = append(got, v) }})
	if err := drainErr(src); err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two warnings, got %v", got)
	}
}

// Keys are scoped to their own object.
func TestWrap_DuplicateScopes(t *testing.T) {
	toks := []Token{
		{Kind: KindBeginArray},
		{Kind: KindBeginObject}, {Kind: KindKey, String: "k"}, {Kind: KindNumber, Number: "1"}, {Kind: KindEndObject},
		{Kind: KindBeginObject}, {Kind: KindKey, String: "k"},
		{Kind: KindBeginObject}, {Kind: KindKey, String: "k"}, {Kind: KindNull}, {Kind: KindEndObject},
		{Kind: KindEndObject},
		{Kind: KindEndArray},
	}
	if err := drainErr(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{OnDuplicate: DupError})); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestWrap_MaxDepth(t *testing.T) {
	toks := []Token{
		{Kind: KindBeginObject}, {Kind: KindKey, String: "a"},
		{Kind: KindBeginArray}, {Kind: KindBeginArray},
		{Kind: KindEndArray}, {Kind: KindEndArray}, {Kind: KindEndObject},
	}
	err := drainErr(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxDepth: 2}))
	var ve *ViolationError
	if !errors.As(err, &ve) || ve.Code != "too_deep" || ve.Path != "/a/0" {
		t.Fatalf("expected too_deep at /a/0, got %v", err)
	}
}

func TestWrap_MaxBytes(t *testing.T) {
	err := drainErr(WrapWithEnforcement(&sliceSource{toks: obj("a", "b", "c")}, EnforceOptions{MaxBytes: 25}))
	var ve *ViolationError
	if !errors.As(err, &ve) || ve.Code != "truncated" {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestJoinPointer(t *testing.T) {
	cases := []struct{ base, tok, want string }{
		{"", "a", "/a"},
		{"", "", "/"},
		{"/a", "b/c", "/a/b~1c"},
		{"/a", "~x", "/a/~0x"},
		{"/a", "0", "/a/0"},
	}
	for _, c := range cases {
		if got := JoinPointer(c.base, c.tok); got != c.want {
			t.Fatalf("JoinPointer(%q, %q) = %q, want %q", c.base, c.tok, got, c.want)
		}
	}
}
