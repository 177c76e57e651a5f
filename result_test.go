package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/test-go/testify/assert"
)

// Define the JSON schema
const schemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$id": "example-schema",
	"type": "object",
	"title": "foo object schema",
	"properties": {
	  "foo": {
		"title": "foo's title",
		"description": "foo's description",
		"type": "string",
		"pattern": "^foo ",
		"minLength": 10
	  }
	},
	"required": [ "foo" ],
	"additionalProperties": false
}`

func TestValidationOutputs(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(schemaJSON))
	if err != nil {
		t.Fatalf("Failed to compile schema: %v", err)
	}

	testCases := []struct {
		description   string
		instance      interface{}
		expectedValid bool
	}{
		{
			description: "Valid input matching schema requirements",
			instance: map[string]interface{}{
				"foo": "foo bar baz baz",
			},
			expectedValid: true,
		},
		{
			description:   "Input missing required property 'foo'",
			instance:      map[string]interface{}{},
			expectedValid: false,
		},
		{
			description: "Invalid additional property",
			instance: map[string]interface{}{
				"foo": "foo valid", "extra": "data",
			},
			expectedValid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			result := schema.Validate(tc.instance)

			if result.Valid != tc.expectedValid {
				t.Errorf("FlagOutput validity mismatch: expected %v, got %v", tc.expectedValid, result.Valid)
			}
		})
	}
}

func TestToLocalizeList(t *testing.T) {
	i18nBundle, err := GetI18n()
	assert.Nil(t, err, "Loading the embedded locale bundle should not fail")
	localizer := i18nBundle.NewLocalizer("zh-Hans")

	schemaJSON := `{
        "type": "object",
        "properties": {
            "name": {"type": "string", "minLength": 3},
            "age": {"type": "integer", "minimum": 20},
            "email": {"type": "string", "format": "email"}
        },
        "required": ["name", "age", "email"]
    }`

	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(schemaJSON))
	assert.Nil(t, err, "Schema compilation should not fail")

	instance := map[string]interface{}{
		"name":  "Jo",
		"age":   18,
		"email": "not-an-email",
	}
	result := schema.Validate(instance)

	assert.False(t, result.IsValid(), "Schema validation should fail for the given instance")

	details, err := json.MarshalIndent(result.ToLocalizeList(localizer), "", "  ")
	assert.Nil(t, err, "Marshaling the localized list should not fail")

	assert.Contains(t, string(details), "字符串长度小于最小值", "The error message for 'minLength' should be correctly localized and contain the expected substring")
}

func TestToList(t *testing.T) {
	evaluationResult := &EvaluationResult{
		Valid:            true,
		EvaluationPath:   "/",
		SchemaLocation:   "http://example.com/schema",
		InstanceLocation: "http://example.com/instance",
		Annotations: map[string]interface{}{
			"key1": "value1",
			"key2": "value2",
		},
		Errors: map[string]*EvaluationError{
			"error1": {
				Keyword:  "required",
				Code:     "ERR_REQUIRED",
				Message:  "Field is required",
				Severity: SeverityError,
				Params: map[string]interface{}{
					"fieldName": "fieldName1",
				},
			},
			"error2": {
				Keyword:  "minLength",
				Code:     "ERR_MIN_LENGTH",
				Message:  "Field length is too short",
				Severity: SeverityError,
				Params: map[string]interface{}{
					"fieldName": "fieldName2",
					"minLength": 5,
				},
			},
		},
		Details: []*EvaluationResult{
			{
				Valid:          false,
				EvaluationPath: "/property",
				Errors: map[string]*EvaluationError{
					"error3": {
						Keyword:  "format",
						Code:     "ERR_FORMAT",
						Message:  "Field format is invalid",
						Severity: SeverityError,
						Params: map[string]interface{}{
							"fieldName": "fieldName3",
							"format":    "email",
						},
					},
				},
			},
		},
	}

	list1 := evaluationResult.ToList()

	assert.NotNil(t, list1, "ToList should return a non-nil list")
	assert.Equal(t, 1, len(list1.Details), "Expected length of list.Details is 1")

	for _, item := range list1.Details {
		assert.Equal(t, false, item.Valid, "Expected validity of list item to match EvaluationResult validity")
	}

	list2 := evaluationResult.ToList(false)

	assert.NotNil(t, list2, "ToList with includeHierarchy=false should return a non-nil list")
	assert.Equal(t, 1, len(list2.Details), "Expected length of list.Details is 1")

	for _, item := range list2.Details {
		assert.Equal(t, false, item.Valid, "Expected validity of list item to match EvaluationResult validity")
	}
}

func TestAddErrorSeverityWarningDoesNotInvalidate(t *testing.T) {
	result := &EvaluationResult{Valid: true}

	result.AddError(NewEvaluationError("format", "format_mismatch", "Value does not match format '{format}'").WithSeverity(SeverityWarning))
	assert.True(t, result.IsValid(), "a SeverityWarning diagnostic must not flip Valid to false")
	assert.Contains(t, result.Errors, "format")

	result.AddError(NewEvaluationError("required", "missing_required_property", "Required property is missing"))
	assert.False(t, result.IsValid(), "a SeverityError diagnostic must flip Valid to false")
}
