package engine

// Kind represents token kinds from a generic JSON-like source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindNames = [...]string{
	KindBeginObject: "begin-object",
	KindEndObject:   "end-object",
	KindBeginArray:  "begin-array",
	KindEndArray:    "end-array",
	KindKey:         "key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "bool",
	KindNull:        "null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal pull interface shared by all drivers. NextToken
// returns io.EOF once the input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// IsScalar reports whether k is a single-token value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBool, KindNull:
		return true
	}
	return false
}
