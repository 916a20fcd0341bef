package engine

import "testing"

func TestDelims_KeyPositions(t *testing.T) {
	var d Delims
	// {"a":["b",{"c":"d"}],"e":"f"}
	d.Open(true)
	if got := d.Classify("a").Kind; got != KindKey {
		t.Fatalf("first string in object classified as %v", got)
	}
	d.Open(false)
	if got := d.Classify("b").Kind; got != KindString {
		t.Fatalf("array item classified as %v", got)
	}
	d.Open(true)
	if got := d.Classify("c").Kind; got != KindKey {
		t.Fatalf("nested key classified as %v", got)
	}
	if got := d.Classify("d").Kind; got != KindString {
		t.Fatalf("nested value classified as %v", got)
	}
	d.Close()
	d.Close()
	if got := d.Classify("e").Kind; got != KindKey {
		t.Fatalf("key after container value classified as %v", got)
	}
	d.Value()
	if d.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", d.Depth())
	}
	d.Close()
	if got := d.Classify("top").Kind; got != KindString {
		t.Fatalf("top-level string classified as %v", got)
	}
}
