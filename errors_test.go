package jxsmoln_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	jxsmoln "github.com/reoring/jxsmoln"
	"github.com/reoring/jxsmoln/i18n"
)

func TestError_Message(t *testing.T) {
	e := &jxsmoln.Error{Code: jxsmoln.CodeEmptyProperty, Path: "/a", Line: 4, Message: "property 'a' has no value"}
	want := "empty property at /a (line 4): property 'a' has no value"
	if e.Error() != want {
		t.Fatalf("got %q want %q", e.Error(), want)
	}

	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if msg := e.Error(); !strings.HasPrefix(msg, "プロパティが空です") {
		t.Fatalf("expected japanese prefix, got %q", msg)
	}
}

func TestError_CauseAndHelpers(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	e := &jxsmoln.Error{Code: jxsmoln.CodePrematureEnd, Path: "/", Cause: cause}
	wrapped := errors.Join(errors.New("outer"), e)

	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Fatalf("expected the cause to be reachable through Unwrap")
	}
	if !strings.Contains(e.Error(), cause.Error()) {
		t.Fatalf("expected cause text in %q", e.Error())
	}
	got, ok := jxsmoln.AsError(wrapped)
	if !ok || got != e {
		t.Fatalf("AsError failed on wrapped error")
	}
	if !jxsmoln.HasCode(wrapped, jxsmoln.CodePrematureEnd) || jxsmoln.HasCode(wrapped, jxsmoln.CodeParseError) {
		t.Fatalf("HasCode mismatch")
	}
	if _, ok := jxsmoln.AsError(nil); ok {
		t.Fatalf("AsError(nil) must report false")
	}
	if errors.Is(e, jxsmoln.ErrUnsupported) {
		t.Fatalf("only unsupported_feature matches ErrUnsupported")
	}
}

func TestError_DecodeMessagesAreDistinct(t *testing.T) {
	docs := map[string]string{
		jxsmoln.CodeMissingAttribute:    `<j:ob xmlns:j="{ns}"><j:prop><j:null/></j:prop></j:ob>`,
		jxsmoln.CodeEmptyProperty:       `<j:ob xmlns:j="{ns}"><j:prop key="a"/></j:ob>`,
		jxsmoln.CodeDuplicateKey:        `<j:ob xmlns:j="{ns}"><j:prop key="a"><j:null/></j:prop><j:prop key="a"><j:null/></j:prop></j:ob>`,
		jxsmoln.CodeNamespaceMismatch:   `<str>x</str>`,
		jxsmoln.CodeUnrecognizedElement: `<j:nope xmlns:j="{ns}"/>`,
	}
	seen := map[string]string{}
	for code, doc := range docs {
		_, err := jxsmoln.Unmarshal(jx(doc))
		wantCode(t, err, code, "")
		msg := err.Error()
		if prev, dup := seen[msg]; dup {
			t.Fatalf("codes %s and %s share the message %q", prev, code, msg)
		}
		seen[msg] = code
	}
}
