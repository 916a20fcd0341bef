package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness selects what happens when an object repeats a key.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Violation describes one rule broken by the token stream.
type Violation struct {
	Code    string
	Path    string
	Message string
	Key     string
}

// ViolationError is returned by NextToken when a violation is fatal.
type ViolationError struct{ Violation }

func (e *ViolationError) Error() string { return e.Violation.Message }

// EnforceOptions lists the checks applied while tokens stream past.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// Sink receives non-fatal violations (duplicate keys under DupWarn).
	Sink func(Violation)
}

// Enabled reports whether wrapping a source with these options does anything.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0 || o.MaxBytes > 0
}

// scope is one open container. For objects, member is the key whose value
// is pending ("" and seen==nil for arrays).
type scope struct {
	path   string
	seen   map[string]bool
	member string
	inVal  bool
	index  int
}

func (s *scope) isObject() bool { return s.seen != nil }

// childPath names the value that starts with the next token.
func (s *scope) childPath() string {
	if s.isObject() {
		return JoinPointer(s.path, s.member)
	}
	p := JoinPointer(s.path, strconv.Itoa(s.index))
	s.index++
	return p
}

// WrapWithEnforcement returns inner unchanged when opt checks nothing, and a
// checking wrapper otherwise.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcer{inner: inner, opt: opt}
}

type enforcer struct {
	inner  TokenSource
	opt    EnforceOptions
	scopes []*scope
}

func (e *enforcer) top() *scope {
	if len(e.scopes) == 0 {
		return nil
	}
	return e.scopes[len(e.scopes)-1]
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	at := "/"
	switch tok.Kind {
	case KindKey:
		at, err = e.key(tok.String)
	case KindEndObject, KindEndArray:
		if s := e.top(); s != nil {
			at = orRoot(s.path)
			e.scopes = e.scopes[:len(e.scopes)-1]
		}
		e.completed()
	case KindBeginObject, KindBeginArray:
		at, err = e.open(tok.Kind == KindBeginObject)
	default:
		if s := e.top(); s != nil {
			at = orRoot(s.childPath())
		}
		e.completed()
	}
	if err != nil {
		return Token{}, err
	}
	if e.opt.MaxBytes > 0 && e.Location() > e.opt.MaxBytes {
		return Token{}, &ViolationError{Violation{Code: "truncated", Path: at, Message: "max bytes exceeded"}}
	}
	return tok, nil
}

func (e *enforcer) open(object bool) (string, error) {
	var path string
	if s := e.top(); s != nil {
		path = s.childPath()
	}
	next := &scope{path: path}
	if object {
		next.seen = map[string]bool{}
	}
	e.scopes = append(e.scopes, next)
	if e.opt.MaxDepth > 0 && len(e.scopes) > e.opt.MaxDepth {
		return "", &ViolationError{Violation{Code: "too_deep", Path: orRoot(path), Message: "max depth exceeded"}}
	}
	return orRoot(path), nil
}

func (e *enforcer) key(k string) (string, error) {
	s := e.top()
	if s == nil || !s.isObject() || s.inVal {
		return "/", nil
	}
	path := JoinPointer(s.path, k)
	if s.seen[k] && e.opt.OnDuplicate != DupIgnore {
		v := Violation{Code: "duplicate_key", Path: path, Key: k, Message: "key '" + k + "' duplicated"}
		if e.opt.OnDuplicate == DupError {
			return "", &ViolationError{v}
		}
		if e.opt.Sink != nil {
			e.opt.Sink(v)
		}
	}
	s.seen[k] = true
	s.member, s.inVal = k, true
	return path, nil
}

// completed marks the pending member of the enclosing object as done.
func (e *enforcer) completed() {
	if s := e.top(); s != nil && s.isObject() {
		s.member, s.inVal = "", false
	}
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

func orRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends one RFC 6901 reference token to a JSON Pointer.
func JoinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
