package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJobDetails_Valid(t *testing.T) {
	raw := []byte(`{
		"title": "Senior Go Engineer",
		"company": "Acme",
		"requirements": ["Go", "gRPC"],
		"culture": "remote-first",
		"summary": "Build the platform."
	}`)
	assert.NoError(t, ValidateJobDetails(raw))
}

func TestValidateJobDetails_CultureOptional(t *testing.T) {
	raw := []byte(`{
		"title": "Senior Go Engineer",
		"company": "Acme",
		"requirements": [],
		"summary": "Build the platform."
	}`)
	assert.NoError(t, ValidateJobDetails(raw))
}

func TestValidateJobDetails_MissingRequiredField(t *testing.T) {
	raw := []byte(`{
		"title": "Senior Go Engineer",
		"requirements": ["Go"],
		"summary": "Build the platform."
	}`)
	assert.Error(t, ValidateJobDetails(raw))
}

func TestValidateJobDetails_EmptyTitleRejected(t *testing.T) {
	raw := []byte(`{
		"title": "",
		"company": "Acme",
		"requirements": ["Go"],
		"summary": "Build the platform."
	}`)
	assert.Error(t, ValidateJobDetails(raw))
}

func TestValidateJobDetails_WrongTypeRejected(t *testing.T) {
	raw := []byte(`{
		"title": "Senior Go Engineer",
		"company": "Acme",
		"requirements": "Go, gRPC",
		"summary": "Build the platform."
	}`)
	assert.Error(t, ValidateJobDetails(raw))
}

func TestValidateCoverLetter_Valid(t *testing.T) {
	raw := []byte(`{
		"content": "Dear hiring team,",
		"touchpoints": ["Go expertise matches the stack"],
		"suggestions": ["Mention the open source work"]
	}`)
	assert.NoError(t, ValidateCoverLetter(raw))
}

func TestValidateCoverLetter_MissingSuggestions(t *testing.T) {
	raw := []byte(`{
		"content": "Dear hiring team,",
		"touchpoints": []
	}`)
	assert.Error(t, ValidateCoverLetter(raw))
}

func TestValidateCoverLetter_EmptyContentRejected(t *testing.T) {
	raw := []byte(`{
		"content": "",
		"touchpoints": [],
		"suggestions": []
	}`)
	assert.Error(t, ValidateCoverLetter(raw))
}

func TestValidate_NotJSON(t *testing.T) {
	assert.Error(t, ValidateJobDetails([]byte("not json at all")))
	assert.Error(t, ValidateCoverLetter([]byte("```json")))
}
