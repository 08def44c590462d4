package studyapi

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`whatever`)))
}

func TestValidateResponse_ProblemList(t *testing.T) {
	valid := json.RawMessage(`[
		{
			"id": "p1",
			"course_id": "c1",
			"topic": "recursion",
			"difficulty": "easy",
			"question_type": "free_response",
			"question_text": "Define recursion.",
			"answer": "recursion",
			"explanation": ""
		}
	]`)
	require.NoError(t, validateResponse(problemListSchema, valid))

	missingRequired := json.RawMessage(`[{"id": "p1"}]`)
	err := validateResponse(problemListSchema, missingRequired)
	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))

	badEnum := json.RawMessage(`[
		{
			"id": "p1",
			"course_id": "c1",
			"question_type": "essay",
			"question_text": "x",
			"answer": "y"
		}
	]`)
	assert.Error(t, validateResponse(problemListSchema, badEnum))
}

func TestValidateResponse_StudyGuide(t *testing.T) {
	require.NoError(t, validateResponse(studyGuideSchema, json.RawMessage(
		`{"id": "g1", "course_id": "c1", "content": "# Guide"}`,
	)))

	err := validateResponse(studyGuideSchema, json.RawMessage(`{"id": "g1"}`))
	assert.Error(t, err, "content is required")

	assert.Error(t, validateResponse(studyGuideSchema, json.RawMessage(`{"course_id": "c1", "content": ""}`)))
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	err := validateResponse(instructorReportSchema, json.RawMessage(`{not json`))
	var invalid *ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
}

func TestValidateResponse_SchemaCompiledOnce(t *testing.T) {
	payload := json.RawMessage(`{"report": "r"}`)
	require.NoError(t, validateResponse(instructorReportSchema, payload))

	cached, ok := schemaCache.Load(instructorReportSchema.Name)
	require.True(t, ok)

	require.NoError(t, validateResponse(instructorReportSchema, payload))
	again, _ := schemaCache.Load(instructorReportSchema.Name)
	assert.Same(t, cached, again)
}
