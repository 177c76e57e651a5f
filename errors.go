package jsonschema

import "errors"

// === Network and IO Related Errors ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the specified scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when data cannot be read from the specified URL.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when there is an error fetching from the URL.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when an invalid HTTP status code is returned.
	ErrInvalidStatusCode = errors.New("invalid http status code")
)

// === Serialization Related Errors ===
var (
	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrXMLUnmarshal is returned when there is an error unmarshalling XML.
	ErrXMLUnmarshal = errors.New("xml unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Schema Compilation and Parsing Related Errors ===
var (
	// ErrSchemaCompilation is returned when a schema compilation fails.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrReferenceResolution is returned when a reference cannot be resolved.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrGlobalReferenceResolution is returned when a global reference cannot be resolved.
	ErrGlobalReferenceResolution = errors.New("global reference resolution failed")

	// ErrJSONPointerSegmentDecode is returned when a segment cannot be decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a segment is not found in the schema context.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidJSONSchemaType is returned when the JSON schema type is invalid.
	ErrInvalidJSONSchemaType = errors.New("invalid schema type")

	// ErrRegexValidation is returned when one or more regex patterns in a schema fail to compile.
	ErrRegexValidation = errors.New("schema regex validation failed")

	// ErrUnresolvedDialect is returned when $schema names a dialect this engine does not recognize.
	// Resolution falls back to draft/2020-12; this error is surfaced as a load-time warning only.
	ErrUnresolvedDialect = errors.New("unrecognized schema dialect")

	// ErrMalformedURI is returned when a $ref, $id, or $schema value cannot be parsed as a URI.
	ErrMalformedURI = errors.New("malformed uri")

	// ErrUnsupportedModificationAction is returned by ApplyModification for an action other than add/delete.
	ErrUnsupportedModificationAction = errors.New("unsupported modification action")

	// ErrModificationPathNotFound is returned when ApplyModification's path does not resolve within the schema.
	ErrModificationPathNotFound = errors.New("modification path not found")
)

// === Type Conversion Related Errors ===
var (
	// ErrUnsupportedTypeForRat is returned when the type is unsupported for conversion to *big.Rat.
	ErrUnsupportedTypeForRat = errors.New("unsupported type for rat conversion")

	// ErrFailedToConvertToRat is returned when a value cannot be converted to *big.Rat.
	ErrFailedToConvertToRat = errors.New("failed to convert to rat")
)

// === Data Value Errors ===
var (
	// ErrNilConstValue is returned when trying to unmarshal into a nil ConstValue.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")
)
