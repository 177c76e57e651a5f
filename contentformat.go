package jsonschema

// evaluateFormat checks "format": the instance is checked against a custom
// format registered on the compiler, falling back to the global Formats
// registry. When the compiler's AssertFormat is off, a mismatch is still
// surfaced as a SeverityWarning diagnostic rather than silently dropped, so
// callers can inspect format annotations without failing validation.
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-format
func evaluateFormat(schema *Schema, value interface{}) *EvaluationError {
	if schema.Format == nil {
		return nil
	}

	formatName := *schema.Format
	var formatDef *FormatDef
	var customValidator func(interface{}) bool

	if schema.compiler != nil {
		schema.compiler.customFormatsRW.RLock()
		formatDef = schema.compiler.customFormats[formatName]
		schema.compiler.customFormatsRW.RUnlock()
	}

	if formatDef != nil {
		if formatDef.Type != "" {
			valueType := getDataType(value)
			if !matchesType(valueType, formatDef.Type) {
				return nil
			}
		}
		customValidator = formatDef.Validate
	} else if globalValidator, ok := Formats[formatName]; ok {
		customValidator = globalValidator
	}

	if customValidator != nil {
		if !customValidator(value) {
			mismatch := NewEvaluationError("format", "format_mismatch", "Value does not match format '{format}'", map[string]interface{}{"format": formatName})
			if schema.compiler != nil && schema.compiler.AssertFormat {
				return mismatch
			}
			return mismatch.WithSeverity(SeverityWarning)
		}
		return nil
	}

	if schema.compiler != nil && schema.compiler.AssertFormat {
		return NewEvaluationError("format", "unknown_format", "Unknown format '{format}'", map[string]interface{}{"format": formatName})
	}

	return nil
}

// matchesType reports whether valueType satisfies requiredType, treating
// "integer" as also satisfying a required "number".
func matchesType(valueType, requiredType string) bool {
	if requiredType == "" {
		return true
	}

	if requiredType == "number" && valueType == "integer" {
		return true
	}

	return valueType == requiredType
}

// evaluateContent checks "contentEncoding"/"contentMediaType"/"contentSchema":
// decodes the string instance, unmarshals it per its media type, and (if
// contentSchema is set) validates the decoded value against that subschema.
// References:
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentencoding
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentmediatype
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentschema
func evaluateContent(schema *Schema, data interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) (*EvaluationResult, *EvaluationError) {
	dataStr, isString := data.(string)
	if !isString {
		return nil, nil
	}

	var content []byte
	var parsedData interface{}
	var err error

	if schema.ContentEncoding != nil {
		decoder, exists := schema.compiler.Decoders[*schema.ContentEncoding]
		if !exists {
			return nil, NewEvaluationError("contentEncoding", "unsupported_encoding", "Unsupported encoding '{encoding}' specified.", map[string]interface{}{"encoding": *schema.ContentEncoding})
		}
		content, err = decoder(dataStr)
		if err != nil {
			return nil, NewEvaluationError("contentEncoding", "invalid_encoding", "Error decoding data with '{encoding}'", map[string]interface{}{"error": err.Error(), "encoding": *schema.ContentEncoding})
		}
	} else {
		content = []byte(dataStr)
	}

	if schema.ContentMediaType != nil {
		unmarshal, exists := schema.compiler.MediaTypes[*schema.ContentMediaType]
		if !exists {
			return nil, NewEvaluationError("contentMediaType", "unsupported_media_type", "Unsupported media type '{mediaType}' specified.", map[string]interface{}{"mediaType": *schema.ContentMediaType})
		}
		parsedData, err = unmarshal(content)
		if err != nil {
			return nil, NewEvaluationError("contentMediaType", "invalid_media_type", "Error unmarshalling data with media type '{mediaType}'", map[string]interface{}{"error": err.Error(), "mediaType": *schema.ContentMediaType})
		}
	} else {
		parsedData = content
	}

	if schema.ContentSchema != nil {
		result, _, _ := schema.ContentSchema.evaluate(parsedData, dynamicScope)
		if result != nil {
			result.SetEvaluationPath("/contentSchema").
				SetSchemaLocation(schema.GetSchemaLocation("/contentSchema")).
				SetInstanceLocation("")

			if !result.IsValid() {
				return result, NewEvaluationError("contentSchema", "content_schema_mismatch", "Content does not match the schema")
			}
			return result, nil
		}
	}

	return nil, nil
}
