// Package jsonschema implements a JSON Schema validation engine covering
// drafts 04, 07, 2019-09, and 2020-12, with dynamic-scope reference
// resolution, annotation-driven keywords, and localized diagnostics.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
