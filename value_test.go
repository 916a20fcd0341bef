package jxsmoln_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	jxsmoln "github.com/reoring/jxsmoln"
)

func TestParseNumber_Rule(t *testing.T) {
	cases := []struct {
		in   string
		want jxsmoln.Value
	}{
		{"0", jxsmoln.Integer(0)},
		{"-17", jxsmoln.Integer(-17)},
		{" 42\n", jxsmoln.Integer(42)},
		{"9223372036854775807", jxsmoln.Integer(math.MaxInt64)},
		{"-9223372036854775808", jxsmoln.Integer(math.MinInt64)},
		{"9223372036854775808", jxsmoln.Real(9223372036854775808)},
		{"1.5", jxsmoln.Real(1.5)},
		{"3.0", jxsmoln.Real(3)},
		{"-2.5e-3", jxsmoln.Real(-0.0025)},
		{"1E3", jxsmoln.Real(1000)},
	}
	for _, c := range cases {
		got, err := jxsmoln.ParseNumber(c.in)
		if err != nil {
			t.Fatalf("ParseNumber(%q): %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("ParseNumber(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseNumber_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1e400", "NaN", "Infinity", "inf", "0x10", "1_000", "12abc"} {
		_, err := jxsmoln.ParseNumber(in)
		e := wantCode(t, err, jxsmoln.CodeNumberFormat, "")
		if e.Text == "" && in != "" {
			t.Fatalf("ParseNumber(%q): expected offending text on error", in)
		}
	}
}

func TestValue_EqualAndAccessors(t *testing.T) {
	v := jxsmoln.Object(
		jxsmoln.M("b", jxsmoln.Integer(1)),
		jxsmoln.M("a", jxsmoln.Array(jxsmoln.String("x"), jxsmoln.Null())),
	)
	if v.Kind() != jxsmoln.KindObject || v.Len() != 2 {
		t.Fatalf("unexpected object: %v", v)
	}
	if diff := cmp.Diff([]string{"b", "a"}, v.Keys()); diff != "" {
		t.Fatalf("key order (-want +got):\n%s", diff)
	}
	a, ok := v.Get("a")
	if !ok || a.Len() != 2 || a.Index(0).Str() != "x" {
		t.Fatalf("unexpected member a: %v", a)
	}
	if _, ok := v.Get("zzz"); ok {
		t.Fatalf("expected missing key")
	}

	swapped := jxsmoln.Object(
		jxsmoln.M("a", jxsmoln.Array(jxsmoln.String("x"), jxsmoln.Null())),
		jxsmoln.M("b", jxsmoln.Integer(1)),
	)
	if jxsmoln.Equal(v, swapped) {
		t.Fatalf("member order must be significant")
	}
	if jxsmoln.Equal(jxsmoln.Integer(1), jxsmoln.Real(1)) {
		t.Fatalf("integer and real must not compare equal")
	}
	if jxsmoln.Equal(jxsmoln.Real(math.NaN()), jxsmoln.Real(math.NaN())) {
		t.Fatalf("NaN must not equal itself")
	}
	if !jxsmoln.Equal(jxsmoln.Null(), jxsmoln.Value{}) {
		t.Fatalf("zero Value must be null")
	}
	if got := jxsmoln.Integer(7).Float(); got != 7 {
		t.Fatalf("Float of integer: %v", got)
	}
}

func TestValue_ItemsAreCopies(t *testing.T) {
	arr := jxsmoln.Array(jxsmoln.Integer(1))
	items := arr.Items()
	items[0] = jxsmoln.Integer(2)
	if arr.Index(0).Int() != 1 {
		t.Fatalf("Items must not alias internal storage")
	}
}

func TestObject_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate key")
		}
	}()
	jxsmoln.Object(jxsmoln.M("a", jxsmoln.Null()), jxsmoln.M("a", jxsmoln.Null()))
}

func TestValue_JSON(t *testing.T) {
	v := jxsmoln.Object(
		jxsmoln.M("s", jxsmoln.String("a\"<b>")),
		jxsmoln.M("i", jxsmoln.Integer(-3)),
		jxsmoln.M("r", jxsmoln.Real(2)),
		jxsmoln.M("l", jxsmoln.Array(jxsmoln.Bool(true), jxsmoln.Bool(false), jxsmoln.Null())),
		jxsmoln.M("o", jxsmoln.Object()),
	)
	want := `{"s":"a\"<b>","i":-3,"r":2.0,"l":[true,false,null],"o":{}}`
	if got := v.String(); got != want {
		t.Fatalf("JSON mismatch:\n got %s\nwant %s", got, want)
	}
	if _, err := jxsmoln.Real(math.Inf(1)).MarshalJSON(); err == nil {
		t.Fatalf("expected error for non-finite real")
	}
}

func TestReadJSONValue(t *testing.T) {
	v, err := jxsmoln.ReadJSONValue(jxsmoln.JSONBytes([]byte(`{"b":[1,2.5,"x"],"a":null}`)))
	if err != nil {
		t.Fatalf("ReadJSONValue: %v", err)
	}
	want := jxsmoln.Object(
		jxsmoln.M("b", jxsmoln.Array(jxsmoln.Integer(1), jxsmoln.Real(2.5), jxsmoln.String("x"))),
		jxsmoln.M("a", jxsmoln.Null()),
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = jxsmoln.ReadJSONValue(jxsmoln.JSONBytes([]byte(`{"a":1,"a":2}`)))
	wantCode(t, err, jxsmoln.CodeDuplicateKey, "/a")

	_, err = jxsmoln.ReadJSONValue(jxsmoln.JSONBytes([]byte(`1 2`)))
	wantCode(t, err, jxsmoln.CodeTrailingContent, "/")

	_, err = jxsmoln.ReadJSONValue(jxsmoln.JSONBytes(nil))
	wantCode(t, err, jxsmoln.CodePrematureEnd, "/")
}
