package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootSchema(t *testing.T) {
	compiler := NewCompiler()
	root := &Schema{ID: "root"}
	child := &Schema{ID: "child"}
	grandChild := &Schema{ID: "grandChild"}

	child.initializeSchema(compiler, root)
	grandChild.initializeSchema(compiler, child)

	if grandChild.getRootSchema().ID != "root" {
		t.Errorf("Expected root schema ID to be 'root', got '%s'", grandChild.getRootSchema().ID)
	}
}

func TestSchemaInitialization(t *testing.T) {
	compiler := NewCompiler().SetDefaultBaseURI("http://default.com/")

	tests := []struct {
		name            string
		id              string
		expectedID      string
		expectedURI     string
		expectedBaseURI string
	}{
		{
			name:            "Schema with absolute $id",
			id:              "http://example.com/schema",
			expectedID:      "http://example.com/schema",
			expectedURI:     "http://example.com/schema",
			expectedBaseURI: "http://example.com/",
		},
		{
			name:            "Schema with relative $id",
			id:              "schema",
			expectedID:      "schema",
			expectedURI:     "http://default.com/schema",
			expectedBaseURI: "http://default.com/",
		},
		{
			name:            "Schema without $id",
			id:              "",
			expectedID:      "",
			expectedURI:     "",
			expectedBaseURI: "http://default.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemaJSON := createTestSchemaJSON(tt.id, map[string]string{"name": "string"}, []string{"name"})
			schema, err := compiler.Compile([]byte(schemaJSON))

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, schema.ID)
			assert.Equal(t, tt.expectedURI, schema.uri)
			assert.Equal(t, tt.expectedBaseURI, schema.baseURI)
		})
	}
}

func TestSetCompiler(t *testing.T) {
	customCompiler := NewCompiler()

	schema := &Schema{}
	result := schema.SetCompiler(customCompiler)
	assert.Same(t, schema, result, "SetCompiler should return the schema for chaining")
	assert.Same(t, customCompiler, schema.compiler, "Schema should have the custom compiler set")
}

func TestGetCompilerInheritance(t *testing.T) {
	customCompiler := NewCompiler()

	grandparent := &Schema{}
	grandparent.SetCompiler(customCompiler)

	parent := &Schema{parent: grandparent}
	child := &Schema{parent: parent}

	assert.Same(t, customCompiler, child.GetCompiler(), "child should inherit compiler through the parent chain")
}

func TestGetCompilerFallsBackToDefault(t *testing.T) {
	schema := &Schema{}
	assert.Same(t, defaultCompiler, schema.GetCompiler())
}

func TestSchemaUnresolvedRefs(t *testing.T) {
	compiler := NewCompiler()

	refSchemaJSON := `{
		"$id": "http://example.com/ref",
		"type": "object",
		"properties": {
			"userInfo": {"$ref": "http://example.com/base"}
		}
	}`

	schema, err := compiler.Compile([]byte(refSchemaJSON))
	require.NoError(t, err, "Failed to resolve reference")

	userInfo := (*schema.Properties)["userInfo"]
	unresolved := userInfo.GetUnresolvedReferenceURIs()
	assert.Equal(t, []string{"http://example.com/base"}, unresolved)
}

func TestDeterministicMarshal(t *testing.T) {
	schema := &Schema{
		Type: SchemaType{"object"},
		Properties: &SchemaMap{
			"name": {Type: SchemaType{"string"}},
			"age":  {Type: SchemaType{"integer"}},
		},
		Required: []string{"name", "age"},
	}

	first, err := schema.MarshalJSON()
	require.NoError(t, err)

	second, err := schema.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "repeated marshaling of the same schema must be byte-identical")
}

func TestDraft04BooleanExclusiveBoundsNormalized(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"minimum": 0,
		"exclusiveMinimum": true,
		"maximum": 100,
		"exclusiveMaximum": false
	}`))
	require.NoError(t, err)

	require.NotNil(t, schema.ExclusiveMinimum)
	assert.Nil(t, schema.Minimum, "minimum should be cleared once folded into exclusiveMinimum")
	assert.Equal(t, "0", FormatRat(schema.ExclusiveMinimum))

	require.NotNil(t, schema.Maximum)
	assert.Nil(t, schema.ExclusiveMaximum, "exclusiveMaximum:false must not set a bound")
	assert.Equal(t, "100", FormatRat(schema.Maximum))
}

func TestDraft07NumericExclusiveBoundsUnaffected(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"exclusiveMinimum": 5,
		"exclusiveMaximum": 10
	}`))
	require.NoError(t, err)

	require.NotNil(t, schema.ExclusiveMinimum)
	require.NotNil(t, schema.ExclusiveMaximum)
	assert.Equal(t, "5", FormatRat(schema.ExclusiveMinimum))
	assert.Equal(t, "10", FormatRat(schema.ExclusiveMaximum))
}

func TestDependenciesSplitIntoDependentKeywords(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"dependencies": {
			"credit_card": ["billing_address"],
			"name": {"properties": {"surname": {"type": "string"}}}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"billing_address"}, schema.DependentRequired["credit_card"])
	require.NotNil(t, schema.DependentSchemas["name"])
	assert.NotNil(t, (*schema.DependentSchemas["name"].Properties)["surname"])
}

func TestRequiredFieldOrderingPreservedThroughMarshal(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"required": ["zeta", "alpha", "mid"]
	}`))
	require.NoError(t, err)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	required, ok := result["required"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"zeta", "alpha", "mid"}, required, "required must preserve source order, not be resorted")
}
