package jxsmoln

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/jxsmoln/i18n"
	eng "github.com/reoring/jxsmoln/internal/engine"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNamespaceMismatch   = "namespace_mismatch"
	CodeUnrecognizedElement = "unrecognized_element"
	CodeMisplacedElement    = "misplaced_element"
	CodeMissingAttribute    = "missing_attribute"
	CodeEmptyProperty       = "empty_property"
	CodeDuplicateKey        = "duplicate_key"
	CodeStructuralMismatch  = "structural_mismatch"
	CodePrematureEnd        = "premature_end"
	CodeNumberFormat        = "number_format"
	CodeUnsupportedFeature  = "unsupported_feature"
	CodeUnexpectedToken     = "unexpected_token"
	CodeTrailingContent     = "trailing_content"
	CodeTooDeep             = "too_deep"
	CodeTruncated           = "truncated"
	CodeParseError          = "parse_error"
	CodeInvalidCharacter    = "invalid_character"
)

// ErrUnsupported is matched (errors.Is) by every CodeUnsupportedFeature error.
var ErrUnsupported = errors.New("jxsmoln: unsupported feature")

// Error describes a failed decode or encode. Every field except Code and
// Message is best-effort context.
type Error struct {
	Code    string
	Path    string // JSON Pointer of the value being processed (for example: /items/2/price).
	Element string // XML local name involved, if any.
	Key     string // Property key involved, if any.
	Text    string // Offending text, if any.
	Line    int    // XML input line (0 when unknown).
	Offset  int64  // Byte offset in the input (-1 or 0 when unknown).
	Message string
	Cause   error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(i18n.T(e.Code, nil))
	if e.Path != "" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(b, " (line %d)", e.Line)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil && !strings.Contains(e.Message, e.Cause.Error()) {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrUnsupported) match unsupported-feature errors.
func (e *Error) Is(target error) bool {
	return target == ErrUnsupported && e.Code == CodeUnsupportedFeature
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err is an *Error carrying code.
func HasCode(err error, code string) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

func normPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// withPath fills in the path of an *Error built without one.
func withPath(err error, path string) error {
	if e, ok := AsError(err); ok && e.Path == "" {
		e.Path = normPath(path)
	}
	return err
}

func unexpectedToken(tok Token, path, msg string) *Error {
	return &Error{
		Code:    CodeUnexpectedToken,
		Path:    normPath(path),
		Offset:  tok.Offset,
		Key:     keyOf(tok),
		Message: fmt.Sprintf("%s, got %s token", msg, tok.Kind),
	}
}

func keyOf(tok Token) string {
	if tok.Kind == TokenKey {
		return tok.String
	}
	return ""
}

// wrapSourceError maps token source failures onto the error model. Errors
// already carrying a code pass through unchanged.
func wrapSourceError(err error) error {
	if _, ok := AsError(err); ok {
		return err
	}
	var ve *eng.ViolationError
	if errors.As(err, &ve) {
		return &Error{Code: ve.Code, Path: ve.Path, Key: ve.Key, Message: ve.Message, Cause: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Code: CodePrematureEnd, Message: "unexpected end of input", Cause: err}
	}
	return &Error{Code: CodeParseError, Message: "reading input", Cause: err}
}
