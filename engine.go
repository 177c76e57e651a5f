package jsonschema

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/kaptinlin/jsonpointer"
)

// Engine assembles the four external operations over a single compiler and
// its schema registry. It exposes nothing else: no CLI, no environment
// variables, no persisted state beyond the compiler's in-memory registry.
type Engine struct {
	compiler *Compiler
}

// NewEngine returns an Engine backed by a fresh Compiler.
func NewEngine() *Engine {
	return &Engine{compiler: NewCompiler()}
}

// RegisterSchema compiles and registers a schema document under uris,
// making it resolvable by later RegisterSchema/ResolveSchema/Validate calls.
func (e *Engine) RegisterSchema(document []byte, uris ...string) (*Schema, error) {
	return e.compiler.Compile(document, uris...)
}

// ResolveSchema returns the previously registered schema reachable at ref,
// following the same resolution rules $ref uses at evaluation time.
func (e *Engine) ResolveSchema(ref string) (*Schema, error) {
	return e.compiler.GetSchema(ref)
}

// Validate evaluates instance against the schema registered at ref.
func (e *Engine) Validate(ref string, instance any) (*EvaluationResult, error) {
	schema, err := e.compiler.GetSchema(ref)
	if err != nil {
		return nil, err
	}
	return schema.Validate(instance), nil
}

// ValidateDocument decodes document (YAML or JSON) through an InstanceModel
// with source spans and validates it against the schema registered at ref,
// so every diagnostic carries the Range it was produced from.
func (e *Engine) ValidateDocument(ref string, document []byte) (*EvaluationResult, error) {
	schema, err := e.compiler.GetSchema(ref)
	if err != nil {
		return nil, err
	}
	return schema.ValidateDocument(document)
}

// ModificationAction selects the mutation ApplyModification performs.
type ModificationAction string

const (
	// ModificationAdd creates or replaces the value at path/key.
	ModificationAdd ModificationAction = "add"
	// ModificationDelete removes the value at path/key.
	ModificationDelete ModificationAction = "delete"
)

// ApplyModification mutates a registered schema in place: action "add"
// creates or replaces the value at path/key, action "delete" removes it.
// The schema is re-serialized deterministically and recompiled so that
// affected scopes (anchors, $ref targets, dynamic scope) are re-indexed.
func (e *Engine) ApplyModification(ref string, action ModificationAction, path, key string, content []byte) (*Schema, error) {
	schema, err := e.compiler.GetSchema(ref)
	if err != nil {
		return nil, err
	}

	raw, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaCompilation, err)
	}

	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONUnmarshal, err)
	}

	segments := jsonpointer.Parse(path)
	container, err := navigateToContainer(tree, segments)
	if err != nil {
		return nil, err
	}

	switch action {
	case ModificationAdd:
		var value any
		if len(content) > 0 {
			if err := json.Unmarshal(content, &value); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrJSONUnmarshal, err)
			}
		}
		container[key] = value
	case ModificationDelete:
		if _, ok := container[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrModificationPathNotFound, jsonpointer.Format(append(segments, key)...))
		}
		delete(container, key)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModificationAction, action)
	}

	updated, err := json.Marshal(tree, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaCompilation, err)
	}

	// Compile hands back an already-cached schema for a known URI, so the
	// stale entry is dropped first to let the updated document replace it.
	e.compiler.mu.Lock()
	delete(e.compiler.schemas, schema.uri)
	e.compiler.mu.Unlock()

	return e.compiler.Compile(updated, ref)
}

// navigateToContainer walks segments from tree's root, returning the map
// that directly contains the final path component. An empty segments list
// means the modification targets a top-level key of tree itself.
func navigateToContainer(tree map[string]any, segments []string) (map[string]any, error) {
	current := tree
	for _, segment := range segments {
		next, ok := current[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModificationPathNotFound, jsonpointer.Format(segments...))
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModificationPathNotFound, jsonpointer.Format(segments...))
		}
		current = nextMap
	}
	return current, nil
}
