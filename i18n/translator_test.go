package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("empty_property", nil); msg != "empty property" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("empty_property", nil); msg == "empty property" || msg == "empty_property" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// unknown languages fall back to en
	SetLanguage("xx")
	if msg := T("duplicate_key", nil); msg != "duplicate key" {
		t.Fatalf("expected english fallback, got %q", msg)
	}
	SetLanguage("en")
}

func TestTranslator_EveryCodeTranslated(t *testing.T) {
	for code := range dict["en"] {
		if _, ok := dict["ja"][code]; !ok {
			t.Fatalf("code %s has no japanese message", code)
		}
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should echo the code, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetLanguage("en")
	if msg := T("too_deep", nil); msg != "X:too_deep" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("too_deep", nil); msg != "nesting too deep" {
		t.Fatalf("nil translator should restore the default, got %q", msg)
	}
}
