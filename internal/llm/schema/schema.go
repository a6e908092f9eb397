package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Model output is untrusted: every JSON payload coming back from a
// provider is validated against these schemas before it is unmarshalled
// into domain types.

const jobDetailsSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"company": {"type": "string", "minLength": 1},
		"requirements": {"type": "array", "items": {"type": "string"}},
		"culture": {"type": "string"},
		"summary": {"type": "string", "minLength": 1}
	},
	"required": ["title", "company", "requirements", "summary"]
}`

const coverLetterSchema = `{
	"type": "object",
	"properties": {
		"content": {"type": "string", "minLength": 1},
		"touchpoints": {"type": "array", "items": {"type": "string"}},
		"suggestions": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["content", "touchpoints", "suggestions"]
}`

var (
	jobDetailsLoader  = gojsonschema.NewStringLoader(jobDetailsSchema)
	coverLetterLoader = gojsonschema.NewStringLoader(coverLetterSchema)
)

// ValidateJobDetails checks a raw job analysis payload against the job
// details schema.
func ValidateJobDetails(raw []byte) error {
	return validate(jobDetailsLoader, raw)
}

// ValidateCoverLetter checks a raw letter payload against the cover
// letter schema.
func ValidateCoverLetter(raw []byte) error {
	return validate(coverLetterLoader, raw)
}

func validate(schemaLoader gojsonschema.JSONLoader, raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("response does not match expected schema: %s", errs[0].String())
		}
		return fmt.Errorf("response does not match expected schema")
	}
	return nil
}
