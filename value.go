package jxsmoln

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

const xmlSpace = " \t\r\n"

// Kind enumerates the cases of the Value variant.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindReal
	KindBoolean
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:    "null",
	KindString:  "string",
	KindInteger: "integer",
	KindReal:    "real",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the in-memory JSON tree produced by the decoder. The zero Value is
// Null. Values are immutable once built; accessors never expose internal
// slices for writing.
type Value struct {
	kind    Kind
	str     string
	i       int64
	f       float64
	b       bool
	items   []Value
	members []Member
}

// Member is one key/value pair of an Object, in insertion order.
type Member struct {
	Key   string
	Value Value
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }
func Real(f float64) Value  { return Value{kind: KindReal, f: f} }
func Bool(b bool) Value     { return Value{kind: KindBoolean, b: b} }
func Null() Value           { return Value{} }

func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value(nil), items...)}
}

// Object builds an object from members in order. It panics when a key repeats;
// decoders report duplicates as errors instead of calling this.
func Object(members ...Member) Value {
	var ob objectBuilder
	for _, m := range members {
		if !ob.add(m.Key, m.Value) {
			panic("jxsmoln: duplicate object key " + strconv.Quote(m.Key))
		}
	}
	return ob.value()
}

// M is shorthand for Member{Key: k, Value: v}.
func M(k string, v Value) Member { return Member{Key: k, Value: v} }

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload ("" for non-strings).
func (v Value) Str() string { return v.str }

// Int returns the integer payload (0 for non-integers).
func (v Value) Int() int64 { return v.i }

// Float returns the numeric payload as float64 for both Integer and Real.
func (v Value) Float() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

func (v Value) Boolean() bool { return v.b }

// Items returns a copy of the array elements.
func (v Value) Items() []Value { return append([]Value(nil), v.items...) }

// Members returns a copy of the object members in insertion order.
func (v Value) Members() []Member { return append([]Member(nil), v.members...) }

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Index returns the i-th array item. It panics if v is not an array or i is
// out of range.
func (v Value) Index(i int) Value { return v.items[i] }

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns object keys in insertion order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// String renders v as compact JSON.
func (v Value) String() string {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

// Equal reports structural equality: numeric kind and object key order are
// significant. NaN is never equal to itself.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindInteger:
		return a.i == b.i
	case KindReal:
		return a.f == b.f
	case KindBoolean:
		return a.b == b.b
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal is the method form of Equal; go-cmp picks it up automatically.
func (v Value) Equal(o Value) bool { return Equal(v, o) }

// ParseNumber applies the number rule: 64-bit signed integer first, then
// 64-bit float. Text that overflows float64 is rejected.
func ParseNumber(text string) (Value, error) {
	text = strings.Trim(text, xmlSpace)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Integer(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(text, "xX_") {
		return Value{}, &Error{Code: CodeNumberFormat, Text: text, Message: "failed to parse '" + text + "' as an integer or a real"}
	}
	return Real(f), nil
}

// numberText formats an Integer or Real with invariant formatting.
func numberText(v Value) string {
	if v.kind == KindInteger {
		return strconv.FormatInt(v.i, 10)
	}
	return formatReal(v.f)
}

// formatReal emits the shortest round-trip text. Integral reals keep a
// fractional marker so they decode back as Real rather than Integer.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'n', 'N', 'I':
			return s
		}
	}
	return s + ".0"
}

// objectBuilder accumulates members while rejecting duplicate keys.
type objectBuilder struct {
	members []Member
	index   map[string]struct{}
}

func (ob *objectBuilder) has(key string) bool {
	_, ok := ob.index[key]
	return ok
}

func (ob *objectBuilder) add(key string, v Value) bool {
	if ob.has(key) {
		return false
	}
	if ob.index == nil {
		ob.index = make(map[string]struct{})
	}
	ob.index[key] = struct{}{}
	ob.members = append(ob.members, Member{Key: key, Value: v})
	return true
}

func (ob *objectBuilder) value() Value {
	return Value{kind: KindObject, members: ob.members}
}
