package engine

// Delims follows container nesting for decoders whose token API reports
// object keys as ordinary strings. The zero value is ready to use.
type Delims struct {
	// one entry per open container; true for an object awaiting a key
	stack []bool
	obj   []bool
}

// Open records a '{' (object) or '['.
func (d *Delims) Open(object bool) {
	d.stack = append(d.stack, object)
	d.obj = append(d.obj, object)
}

// Close records a '}' or ']', which completes a value in the parent.
func (d *Delims) Close() {
	if n := len(d.stack); n > 0 {
		d.stack, d.obj = d.stack[:n-1], d.obj[:n-1]
	}
	d.Value()
}

// Value records a completed scalar value.
func (d *Delims) Value() {
	if n := len(d.stack); n > 0 && d.obj[n-1] {
		d.stack[n-1] = true
	}
}

// Classify classifies a string token, reporting whether it is an object key.
func (d *Delims) Classify(s string) Token {
	if n := len(d.stack); n > 0 && d.stack[n-1] {
		d.stack[n-1] = false
		return Token{Kind: KindKey, String: s}
	}
	d.Value()
	return Token{Kind: KindString, String: s}
}

// Depth is the number of open containers.
func (d *Delims) Depth() int { return len(d.stack) }
