package jxsmoln_test

import (
	"bytes"
	"testing"

	jxsmoln "github.com/reoring/jxsmoln"
)

func TestTrace_Decode(t *testing.T) {
	var events []jxsmoln.TraceEvent
	opt := jxsmoln.DecodeOpt{Trace: func(ev jxsmoln.TraceEvent) { events = append(events, ev) }}
	if _, err := jxsmoln.Unmarshal(jx(`<j:ob xmlns:j="{ns}"><j:prop key="a"><j:num>1</j:num></j:prop></j:ob>`), opt); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected trace events")
	}
	var sawNum bool
	for _, ev := range events {
		if ev.Line == 0 {
			t.Fatalf("event without call-site line: %+v", ev)
		}
		if ev.Op == "num" {
			sawNum = true
			if ev.Path != "/a" || ev.Message != "1" || ev.Depth != 1 {
				t.Fatalf("unexpected num event: %+v", ev)
			}
		}
	}
	if !sawNum {
		t.Fatalf("no num event in %+v", events)
	}
}

func TestTrace_Encode(t *testing.T) {
	var ops []string
	var keys []string
	opt := jxsmoln.EncodeOpt{Trace: func(ev jxsmoln.TraceEvent) {
		ops = append(ops, ev.Op)
		if ev.More && ev.Token.Kind == jxsmoln.TokenKey {
			keys = append(keys, ev.Token.String)
		}
	}}
	var buf bytes.Buffer
	if err := jxsmoln.EncodeDocument(jxsmoln.JSONBytes([]byte(`{"x":[true],"y":null}`)), jxsmoln.NewXMLWriter(&buf), opt); err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	if len(ops) == 0 || ops[0] != "document" {
		t.Fatalf("expected a leading document event, got %v", ops)
	}
	if len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Fatalf("expected key tokens x and y in trace, got %v", keys)
	}
}

// Tracing is observational: output is identical with and without a sink.
func TestTrace_DoesNotChangeOutput(t *testing.T) {
	v := jxsmoln.Object(jxsmoln.M("k", jxsmoln.Array(jxsmoln.Integer(1), jxsmoln.String("s"))))
	plain, err := jxsmoln.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	traced, err := jxsmoln.Marshal(v, jxsmoln.EncodeOpt{Trace: func(jxsmoln.TraceEvent) {}})
	if err != nil {
		t.Fatalf("Marshal traced: %v", err)
	}
	if !bytes.Equal(plain, traced) {
		t.Fatalf("trace changed output:\n%s\n%s", plain, traced)
	}
}
