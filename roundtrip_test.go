package jxsmoln_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	jxsmoln "github.com/reoring/jxsmoln"
)

func roundTripValues() []jxsmoln.Value {
	return []jxsmoln.Value{
		jxsmoln.Null(),
		jxsmoln.Bool(true),
		jxsmoln.Bool(false),
		jxsmoln.String(""),
		jxsmoln.String("  padded\ttext\n"),
		jxsmoln.String("markup <a href=\"x\">&amp;</a> ' \""),
		jxsmoln.String("日本語 ✓"),
		jxsmoln.Integer(0),
		jxsmoln.Integer(math.MaxInt64),
		jxsmoln.Integer(math.MinInt64),
		jxsmoln.Real(0.1),
		jxsmoln.Real(-0.0),
		jxsmoln.Real(3),
		jxsmoln.Real(1e300),
		jxsmoln.Real(5e-324),
		jxsmoln.Array(),
		jxsmoln.Object(),
		jxsmoln.Array(jxsmoln.Array(jxsmoln.Array()), jxsmoln.Object(jxsmoln.M("x", jxsmoln.Array()))),
		jxsmoln.Object(
			jxsmoln.M("z", jxsmoln.Integer(1)),
			jxsmoln.M("a", jxsmoln.Real(1)),
			jxsmoln.M("a/b", jxsmoln.String("slash")),
			jxsmoln.M("~", jxsmoln.String("tilde")),
			jxsmoln.M(" ", jxsmoln.Null()),
			jxsmoln.M("quote\"<&>", jxsmoln.Bool(true)),
		),
	}
}

// Value -> XML -> Value is the identity, including numeric kind and key order.
func TestRoundTrip_ValueXMLValue(t *testing.T) {
	for _, v := range roundTripValues() {
		for _, indent := range []string{"", "\t"} {
			out, err := jxsmoln.MarshalIndent(v, indent)
			if err != nil {
				t.Fatalf("MarshalIndent(%v): %v", v, err)
			}
			back, err := jxsmoln.Unmarshal(out)
			if err != nil {
				t.Fatalf("Unmarshal(%s): %v", out, err)
			}
			if diff := cmp.Diff(v, back); diff != "" {
				t.Fatalf("round trip of %s (-want +got):\n%s", out, diff)
			}
		}
	}
}

// JSON text -> XML -> Value agrees with reading the JSON directly.
func TestRoundTrip_JSONXML(t *testing.T) {
	docs := []string{
		`{"id":7,"price":19.99,"tags":["a","b"],"owner":{"name":"x","active":false},"note":null}`,
		`[1,-1,1.0,1e2,"1",[],{}]`,
		`"just a string"`,
		`{"nested":{"deeper":{"deepest":[[[]]]}}}`,
	}
	for _, doc := range docs {
		want, err := jxsmoln.ReadJSONValue(jxsmoln.JSONBytes([]byte(doc)))
		if err != nil {
			t.Fatalf("ReadJSONValue(%s): %v", doc, err)
		}
		var buf bytes.Buffer
		if err := jxsmoln.EncodeDocument(jxsmoln.JSONBytes([]byte(doc)), jxsmoln.NewXMLWriter(&buf, jxsmoln.WriterOpt{Declaration: true})); err != nil {
			t.Fatalf("EncodeDocument(%s): %v", doc, err)
		}
		got, err := jxsmoln.Unmarshal(buf.Bytes())
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", buf.String(), err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("JSON %s (-want +got):\n%s", doc, diff)
		}
	}
}

// Encoding the items of a decoded sequence one by one reproduces each item.
func TestRoundTrip_SequenceItems(t *testing.T) {
	doc := jx(`<j:multi xmlns:j="{ns}"><j:num>1</j:num><j:ob><j:prop key="k"><j:str>v</j:str></j:prop></j:ob></j:multi>`)
	items, err := jxsmoln.UnmarshalAll(doc)
	if err != nil {
		t.Fatalf("UnmarshalAll: %v", err)
	}
	for _, it := range items {
		out, err := jxsmoln.Marshal(it)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		back, err := jxsmoln.Unmarshal(out)
		if err != nil || !jxsmoln.Equal(it, back) {
			t.Fatalf("item %v did not survive: %v %v", it, back, err)
		}
	}
}
