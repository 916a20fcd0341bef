// Package yaml provides a token driver for YAML input built on gopkg.in/yaml.v3.
// Mappings become objects in document order, sequences become arrays, and
// scalars are typed by their resolved tag. Each YAML document in the stream is
// one top-level value. Importing the package registers it as "yaml".
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	jxsmoln "github.com/reoring/jxsmoln"
	eng "github.com/reoring/jxsmoln/internal/engine"
)

func init() { jxsmoln.RegisterJSONDriver(Driver()) }

// Driver returns a jxsmoln.JSONDriver reading YAML documents.
func Driver() jxsmoln.JSONDriver { return driverYAML{} }

type driverYAML struct{}

func (driverYAML) NewReader(r io.Reader) jxsmoln.Source { return NewReader(r) }
func (driverYAML) NewBytes(b []byte) jxsmoln.Source     { return NewBytes(b) }
func (driverYAML) Name() string                         { return "yaml" }

type frame struct {
	node *yamlv3.Node
	next int
}

type source struct {
	dec   *yamlv3.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource over YAML documents.
func NewReader(r io.Reader) eng.TokenSource { return &source{dec: yamlv3.NewDecoder(r)} }

// NewBytes wraps a byte slice into an engine.TokenSource over YAML documents.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	if len(s.stack) == 0 {
		var doc yamlv3.Node
		if err := s.dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return eng.Token{}, io.EOF
			}
			return eng.Token{}, err
		}
		root := &doc
		if doc.Kind == yamlv3.DocumentNode {
			if len(doc.Content) == 0 {
				return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
			}
			root = doc.Content[0]
		}
		return s.open(root)
	}

	top := &s.stack[len(s.stack)-1]
	switch top.node.Kind {
	case yamlv3.SequenceNode:
		if top.next < len(top.node.Content) {
			n := top.node.Content[top.next]
			top.next++
			return s.open(n)
		}
		s.stack = s.stack[:len(s.stack)-1]
		return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
	default: // MappingNode; Content alternates key, value.
		if top.next < len(top.node.Content) {
			n := top.node.Content[top.next]
			top.next++
			if top.next%2 == 1 {
				return key(n)
			}
			return s.open(n)
		}
		s.stack = s.stack[:len(s.stack)-1]
		return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
	}
}

func (s *source) open(n *yamlv3.Node) (eng.Token, error) {
	for n.Kind == yamlv3.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yamlv3.MappingNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	case yamlv3.SequenceNode:
		s.stack = append(s.stack, frame{node: n})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
	case yamlv3.ScalarNode:
		return scalar(n)
	}
	return eng.Token{}, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func key(n *yamlv3.Node) (eng.Token, error) {
	for n.Kind == yamlv3.AliasNode {
		n = n.Alias
	}
	if n.Kind != yamlv3.ScalarNode {
		return eng.Token{}, fmt.Errorf("yaml: line %d: mapping keys must be scalars", n.Line)
	}
	if n.ShortTag() == "!!merge" {
		return eng.Token{}, fmt.Errorf("yaml: line %d: merge keys are not supported", n.Line)
	}
	return eng.Token{Kind: eng.KindKey, String: n.Value, Offset: -1}, nil
}

func scalar(n *yamlv3.Node) (eng.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Beyond int64: hand the text on so the number rule can fall back to a real.
			return eng.Token{Kind: eng.KindNumber, Number: strings.ReplaceAll(n.Value, "_", ""), Offset: -1}, nil
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: -1}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return eng.Token{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return eng.Token{}, fmt.Errorf("yaml: line %d: %s has no JSON representation", n.Line, n.Value)
		}
		return eng.Token{Kind: eng.KindNumber, Number: formatFloat(f), Offset: -1}, nil
	}
	return eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1}, nil
}

// formatFloat keeps a fractional marker on integral values so they stay reals.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

func (s *source) Location() int64 { return -1 }
