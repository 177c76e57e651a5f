package jsonschema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// evaluateRequired checks "required": every listed property name must exist
// on the object instance, regardless of its value.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-required
func evaluateRequired(schema *Schema, object map[string]interface{}) *EvaluationError {
	if schema.Required == nil {
		return nil
	}

	var missingProps []string
	for _, propName := range schema.Required {
		if _, exists := object[propName]; !exists {
			missingProps = append(missingProps, propName)
		}
	}

	if len(missingProps) == 0 {
		return nil
	}

	if len(missingProps) == 1 {
		return NewEvaluationError("required", "missing_required_property", "Required property {property} is missing", map[string]interface{}{
			"property": fmt.Sprintf("'%s'", missingProps[0]),
		})
	}
	quotedProperties := make([]string, len(missingProps))
	for i, prop := range missingProps {
		quotedProperties[i] = fmt.Sprintf("'%s'", prop)
	}
	return NewEvaluationError("required", "missing_required_properties", "Required properties {properties} are missing", map[string]interface{}{
		"properties": strings.Join(quotedProperties, ", "),
	})
}

// evaluateMinProperties checks "minProperties": the object's property count
// must be >= the bound. Omitted, it behaves like a bound of 0.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minproperties
func evaluateMinProperties(schema *Schema, object map[string]interface{}) *EvaluationError {
	minProperties := float64(0)
	if schema.MinProperties != nil {
		minProperties = *schema.MinProperties
	}

	actualCount := float64(len(object))
	if actualCount < minProperties {
		return NewEvaluationError("minProperties", "too_few_properties", "Value should have at least {min_properties} properties", map[string]interface{}{
			"min_properties": minProperties,
		})
	}

	return nil
}

// evaluateMaxProperties checks "maxProperties": the object's property count
// must be <= the bound.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxproperties
func evaluateMaxProperties(schema *Schema, object map[string]interface{}) *EvaluationError {
	if schema.MaxProperties != nil {
		actualCount := float64(len(object))
		if actualCount > *schema.MaxProperties {
			return NewEvaluationError("maxProperties", "too_many_properties", "Value should have at most {max_properties} properties", map[string]interface{}{
				"max_properties": *schema.MaxProperties,
			})
		}
	}

	return nil
}

// evaluateDependentRequired checks "dependentRequired": whenever a key
// property is present, every property named in its array must also be
// present.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-dependentrequired
func evaluateDependentRequired(schema *Schema, object map[string]interface{}) *EvaluationError {
	if schema.DependentRequired == nil {
		return nil
	}

	dependentMissingProps := make(map[string][]string)

	for key, requiredProps := range schema.DependentRequired {
		if _, keyExists := object[key]; keyExists {
			var missingProps []string
			for _, reqProp := range requiredProps {
				if _, propExists := object[reqProp]; !propExists {
					missingProps = append(missingProps, reqProp)
				}
			}

			if len(missingProps) > 0 {
				dependentMissingProps[key] = missingProps
			}
		}
	}

	if len(dependentMissingProps) > 0 {
		missingPropsJSON, _ := json.Marshal(dependentMissingProps)
		return NewEvaluationError("dependentRequired", "dependent_property_required", "Some required property dependencies are missing: {missing_properties}", map[string]interface{}{
			"missing_properties": string(missingPropsJSON),
		})
	}

	return nil
}

// evaluateDependentSchemas checks "dependentSchemas": whenever a key property
// is present, the entire object instance must validate against the schema
// associated with that key.
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-dependentschemas
func evaluateDependentSchemas(schema *Schema, data interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.DependentSchemas) == 0 {
		return nil, nil
	}

	objData, ok := data.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	invalidProperties := []string{}
	results := []*EvaluationResult{}

	for propName, depSchema := range schema.DependentSchemas {
		if _, exists := objData[propName]; !exists || depSchema == nil {
			continue
		}

		result, schemaEvaluatedProps, schemaEvaluatedItems := depSchema.evaluate(objData, dynamicScope)
		if result == nil {
			continue
		}

		result.SetEvaluationPath(fmt.Sprintf("/dependentSchemas/%s", propName)).
			SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/dependentSchemas/%s", propName))).
			SetInstanceLocation(fmt.Sprintf("/%s", propName))

		if result.IsValid() {
			mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
			mergeIntMaps(evaluatedItems, schemaEvaluatedItems)
		} else {
			invalidProperties = append(invalidProperties, propName)
		}
	}

	if len(invalidProperties) == 1 {
		return results, NewEvaluationError("dependentSchemas", "dependent_schema_mismatch", "Property {property} does not meet the schema requirements dependent on it", map[string]interface{}{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return results, NewEvaluationError("dependentSchemas", "dependent_schemas_mismatch", "Properties {properties} do not meet the schema requirements dependent on them", map[string]interface{}{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}

	return results, nil
}
