package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/cv"
)

func TestValidateDocumentAcceptsSkeleton(t *testing.T) {
	assert.NoError(t, ValidateDocument(cv.NewDocument()))
}

func TestValidateDocumentAcceptsPopulated(t *testing.T) {
	doc := cv.NewDocument()
	doc.Experience = []cv.ExperienceEntry{{
		ID: cv.NewEntryID(), JobTitle: "Engineer", Company: "Acme",
		Responsibilities: []string{"Shipped"},
	}}
	doc.Skills = []cv.SkillEntry{{ID: cv.NewEntryID(), Category: "Languages", Skills: []string{"Go"}}}
	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocumentJSONRejectsWrongTypes(t *testing.T) {
	err := ValidateDocumentJSON([]byte(`{
		"personal_info": {"name": "A"},
		"summary": 42,
		"experience": [],
		"education": [],
		"skills": []
	}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "summary")
}

func TestValidateDocumentJSONRejectsMissingSections(t *testing.T) {
	err := ValidateDocumentJSON([]byte(`{"summary": ""}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateDocumentJSONRejectsEntryWithoutCompany(t *testing.T) {
	err := ValidateDocumentJSON([]byte(`{
		"personal_info": {"name": "A"},
		"summary": "",
		"experience": [{"job_title": "Engineer"}],
		"education": [],
		"skills": []
	}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "company")
}
