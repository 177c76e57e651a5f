package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// evaluateAllOf checks "allOf": the instance must validate against every
// subschema in the array.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-allof
func evaluateAllOf(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.AllOf) == 0 {
		return nil, nil
	}

	invalidIndexes := []string{}
	results := []*EvaluationResult{}

	for i, subSchema := range schema.AllOf {
		if subSchema == nil {
			continue
		}

		skipEval := subSchema.Boolean != nil && *subSchema.Boolean

		result, schemaEvaluatedProps, schemaEvaluatedItems := subSchema.evaluate(instance, dynamicScope)
		if !skipEval {
			mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
			mergeIntMaps(evaluatedItems, schemaEvaluatedItems)
		}

		if result != nil {
			results = append(results, result.SetEvaluationPath(fmt.Sprintf("/allOf/%d", i)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/allOf/%d", i))).
				SetInstanceLocation(""),
			)

			if !result.IsValid() {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	if len(invalidIndexes) == 0 {
		return results, nil
	}

	return results, NewEvaluationError("allOf", "all_of_item_mismatch", "Value does not match the allOf schema at index {indexs}", map[string]interface{}{
		"indexs": strings.Join(invalidIndexes, ", "),
	})
}

// evaluateAnyOf checks "anyOf": the instance must validate against at least
// one subschema in the array.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-anyof
func evaluateAnyOf(schema *Schema, data interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.AnyOf) == 0 {
		return nil, nil
	}

	var valid bool
	results := []*EvaluationResult{}

	for i, subSchema := range schema.AnyOf {
		if subSchema == nil {
			continue
		}

		skipEval := subSchema.Boolean != nil && *subSchema.Boolean
		result, schemaEvaluatedProps, schemaEvaluatedItems := subSchema.evaluate(data, dynamicScope)

		if result != nil {
			results = append(results, result.SetEvaluationPath(fmt.Sprintf("/anyOf/%d", i)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/anyOf/%d", i))).
				SetInstanceLocation(""),
			)

			if result.IsValid() {
				valid = true
				if !skipEval {
					mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
					mergeIntMaps(evaluatedItems, schemaEvaluatedItems)
				}
			}
		}
	}

	if valid {
		return results, nil
	}
	return results, NewEvaluationError("anyOf", "any_of_item_mismatch", "Value does not match anyOf schema")
}

// evaluateOneOf checks "oneOf": the instance must validate against exactly
// one subschema in the array.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-oneof
func evaluateOneOf(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.OneOf) == 0 {
		return nil, nil
	}

	validIndexes := []string{}
	results := []*EvaluationResult{}
	var tempEvaluatedProps map[string]bool
	var tempEvaluatedItems map[int]bool

	for i, subSchema := range schema.OneOf {
		if subSchema == nil {
			continue
		}

		result, schemaEvaluatedProps, schemaEvaluatedItems := subSchema.evaluate(instance, dynamicScope)
		if result != nil {
			results = append(results, result.SetEvaluationPath(fmt.Sprintf("/oneOf/%d", i)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/oneOf/%d", i))).
				SetInstanceLocation(""),
			)

			if result.IsValid() {
				validIndexes = append(validIndexes, strconv.Itoa(i))
				tempEvaluatedProps = schemaEvaluatedProps
				tempEvaluatedItems = schemaEvaluatedItems
			}
		}
	}

	if len(validIndexes) == 1 {
		mergeStringMaps(evaluatedProps, tempEvaluatedProps)
		mergeIntMaps(evaluatedItems, tempEvaluatedItems)
		return results, nil
	}

	if len(validIndexes) > 1 {
		return results, NewEvaluationError("oneOf", "one_of_multiple_matches", "Value should match exactly one schema but matches multiple at indexes {matches}", map[string]interface{}{
			"matches": strings.Join(validIndexes, ", "),
		})
	}
	return results, NewEvaluationError("oneOf", "one_of_item_mismatch", "Value does not match the oneOf schema")
}

// evaluateNot checks "not": the instance must fail to validate against the
// given subschema.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-not
func evaluateNot(schema *Schema, instance interface{}, _ map[string]bool, _ map[int]bool, dynamicScope *DynamicScope) (*EvaluationResult, *EvaluationError) {
	if schema.Not == nil {
		return nil, nil
	}

	result, _, _ := schema.Not.evaluate(instance, dynamicScope)

	if result != nil {
		//nolint:errcheck
		result.SetEvaluationPath("/not").
			SetSchemaLocation(schema.GetSchemaLocation("/not")).
			SetInstanceLocation("")

		if result.IsValid() {
			return result, NewEvaluationError("not", "not_schema_mismatch", "Value should not match the not schema")
		}
	}

	return result, nil
}

// evaluateConditional checks "if"/"then"/"else": when the instance validates
// against "if", "then" (if present) must also validate it; otherwise "else"
// (if present) must. Absent "if", there is nothing to evaluate.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-if
func evaluateConditional(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if schema.If == nil {
		return nil, nil
	}

	ifResult, ifEvaluatedProps, ifEvaluatedItems := schema.If.evaluate(instance, dynamicScope)

	results := []*EvaluationResult{}

	if ifResult == nil {
		return results, nil
	}

	//nolint:errcheck
	ifResult.SetEvaluationPath("/if").
		SetSchemaLocation(schema.GetSchemaLocation("/if")).
		SetInstanceLocation("")

	results = append(results, ifResult)

	if ifResult.IsValid() {
		mergeStringMaps(evaluatedProps, ifEvaluatedProps)
		mergeIntMaps(evaluatedItems, ifEvaluatedItems)

		if schema.Then != nil {
			thenResult, thenEvaluatedProps, thenEvaluatedItems := schema.Then.evaluate(instance, dynamicScope)

			if thenResult != nil {
				//nolint:errcheck
				thenResult.SetEvaluationPath("/then").
					SetSchemaLocation(schema.GetSchemaLocation("/then")).
					SetInstanceLocation("")

				results = append(results, thenResult)

				if !thenResult.IsValid() {
					return results, NewEvaluationError("then", "if_then_mismatch",
						"Value meets the 'if' condition but does not match the 'then' schema")
				}
				mergeStringMaps(evaluatedProps, thenEvaluatedProps)
				mergeIntMaps(evaluatedItems, thenEvaluatedItems)
			}
		}
	} else if schema.Else != nil {
		elseResult, elseEvaluatedProps, elseEvaluatedItems := schema.Else.evaluate(instance, dynamicScope)
		if elseResult != nil {
			results = append(results, elseResult)

			if !elseResult.IsValid() {
				return results, NewEvaluationError("else", "if_else_mismatch",
					"Value fails the 'if' condition and does not match the 'else' schema")
			}
			mergeStringMaps(evaluatedProps, elseEvaluatedProps)
			mergeIntMaps(evaluatedItems, elseEvaluatedItems)
		}
	}

	return results, nil
}
