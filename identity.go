package jsonschema

import (
	"reflect"
	"strings"
)

// evaluateConst checks "const": the instance must equal the keyword's value exactly.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-const
func evaluateConst(schema *Schema, instance interface{}) *EvaluationError {
	if schema.Const == nil {
		return nil
	}

	if schema.Const.Value == nil {
		if instance != nil {
			return NewEvaluationError("const", "const_mismatch_null", "Value does not match constant null value")
		}
	}

	if !reflect.DeepEqual(instance, schema.Const.Value) {
		return NewEvaluationError("const", "const_mismatch", "Value does not match the constant value")
	}
	return nil
}

// evaluateEnum checks "enum": the instance must equal one of the listed values.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
func evaluateEnum(schema *Schema, instance interface{}) *EvaluationError {
	if len(schema.Enum) > 0 {
		for _, enumValue := range schema.Enum {
			if reflect.DeepEqual(instance, enumValue) {
				return nil
			}
		}
		return NewEvaluationError("enum", "value_not_in_enum", "Value should match one of the values specified by the enum")
	}
	return nil
}

// evaluateType checks "type": the instance's JSON type (or, for "number",
// "integer" too) must match one of the keyword's listed type names.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-type
func evaluateType(schema *Schema, instance interface{}) *EvaluationError {
	if len(schema.Type) == 0 {
		return nil
	}

	instanceType := getDataType(instance)

	for _, schemaType := range schema.Type {
		if schemaType == "number" && instanceType == "integer" {
			return nil
		}
		if instanceType == schemaType {
			return nil
		}
	}

	return NewEvaluationError("type", "type_mismatch", "Value is {received} but should be {expected}", map[string]interface{}{
		"expected": strings.Join(schema.Type, ", "),
		"received": instanceType,
	})
}
