package jsonschema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/kaptinlin/jsonpointer"
)

// InstanceNode is a decoded instance document, tagged by JSON Schema type,
// carrying the source range each node was parsed from so diagnostics can
// point back at the original text rather than just a JSON Pointer path.
//
// The value tree comes from a plain yaml.Unmarshal (the same decode path
// Compiler already uses for the application/yaml content media type); the
// ast walk only supplies position information, keyed back onto that tree by
// structural traversal (object key, array index) rather than reconstructing
// values from the AST itself.
type InstanceNode struct {
	Kind       string
	Value      any
	Range      Range
	Properties map[string]*InstanceNode
	Items      []*InstanceNode
}

// DecodeInstanceDocument parses a YAML or JSON instance document into an
// InstanceNode tree with source spans, per the lineage repository's
// application/yaml decoding (github.com/goccy/go-yaml) paired with its
// github.com/goccy/go-yaml/ast package for position information.
func DecodeInstanceDocument(data []byte) (*InstanceNode, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrYAMLUnmarshal, err)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrYAMLUnmarshal, err)
	}

	var root ast.Node
	if len(file.Docs) > 0 {
		root = file.Docs[0].Body
	}

	return buildInstanceNode(value, root), nil
}

// ToValue returns the plain Go value tree (map[string]any / []any / scalars)
// underlying n, suitable for Schema.Validate.
func (n *InstanceNode) ToValue() any {
	if n == nil {
		return nil
	}
	return n.Value
}

// RangeAt resolves a JSON Pointer instance-location path (as produced on
// EvaluationResult.InstanceLocation) to the source range of the node it
// addresses. Returns false if the path does not resolve within n.
func (n *InstanceNode) RangeAt(pointer string) (Range, bool) {
	if n == nil {
		return Range{}, false
	}
	if pointer == "" || pointer == "#" || pointer == "/" {
		return n.Range, true
	}

	segments := jsonpointer.Parse(strings.TrimPrefix(pointer, "#"))
	current := n
	for _, segment := range segments {
		switch current.Kind {
		case "object":
			next, ok := current.Properties[segment]
			if !ok {
				return Range{}, false
			}
			current = next
		case "array":
			idx, ok := parsePointerIndex(segment)
			if !ok || idx < 0 || idx >= len(current.Items) {
				return Range{}, false
			}
			current = current.Items[idx]
		default:
			return Range{}, false
		}
	}
	return current.Range, true
}

func buildInstanceNode(value any, node ast.Node) *InstanceNode {
	n := &InstanceNode{Value: value, Range: rangeOfNode(node)}

	switch v := value.(type) {
	case map[string]any:
		n.Kind = "object"
		n.Properties = make(map[string]*InstanceNode, len(v))
		entries := mappingEntries(node)
		for key, val := range v {
			n.Properties[key] = buildInstanceNode(val, lookupMappingValue(entries, key))
		}
	case []any:
		n.Kind = "array"
		values := sequenceValues(node)
		n.Items = make([]*InstanceNode, len(v))
		for i, val := range v {
			var child ast.Node
			if i < len(values) {
				child = values[i]
			}
			n.Items[i] = buildInstanceNode(val, child)
		}
	case nil:
		n.Kind = "null"
	case bool:
		n.Kind = "boolean"
	case string:
		n.Kind = "string"
	default:
		n.Kind = "number"
	}

	return n
}

// unwrapASTNode resolves Tag/Anchor wrapper nodes to the value node they decorate,
// mirroring the unwrapping the pack's MacroPower-x/magicschema does before
// switching on a node's concrete type.
func unwrapASTNode(node ast.Node) ast.Node {
	for node != nil {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
	return nil
}

func mappingEntries(node ast.Node) []*ast.MappingValueNode {
	switch n := unwrapASTNode(node).(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	}
	return nil
}

func sequenceValues(node ast.Node) []ast.Node {
	if n, ok := unwrapASTNode(node).(*ast.SequenceNode); ok {
		return n.Values
	}
	return nil
}

func lookupMappingValue(entries []*ast.MappingValueNode, key string) ast.Node {
	for _, entry := range entries {
		if entry == nil || entry.Key == nil {
			continue
		}
		if unquoteScalar(entry.Key.String()) == key {
			return entry.Value
		}
	}
	return nil
}

func unquoteScalar(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func rangeOfNode(node ast.Node) Range {
	node = unwrapASTNode(node)
	if node == nil {
		return Range{}
	}
	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return Range{}
	}
	start := Position{Line: tok.Position.Line, Column: tok.Position.Column}
	end := Position{Line: tok.Position.Line, Column: tok.Position.Column + len([]rune(tok.Value))}
	return Range{Start: start, End: end}
}
