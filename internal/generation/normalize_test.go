package generation

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSummaryPassesProseThrough(t *testing.T) {
	fragment, err := Normalize(KindSummary, "input", "  A strong summary.  ")
	require.NoError(t, err)
	assert.Equal(t, TextFragment{Text: "A strong summary."}, fragment)
}

func TestNormalizeListKinds(t *testing.T) {
	for _, kind := range []Kind{KindExperienceResponsibilities, KindEducationDetails, KindSkillSuggestions} {
		t.Run(string(kind), func(t *testing.T) {
			fragment, err := Normalize(kind, "input", "```json\n[\"Docker\",\"Kubernetes\",\"Terraform\"]\n```")
			require.NoError(t, err)
			list, ok := fragment.(ListFragment)
			require.True(t, ok)
			assert.Equal(t, []string{"Docker", "Kubernetes", "Terraform"}, list.Items)
		})
	}
}

func TestNormalizeRejectsNonJSONWithPrefix(t *testing.T) {
	raw := "Sure! Here are some great skills for you to consider adding to your resume today: Docker, Kubernetes, and also Terraform which is very popular."

	structuredKinds := []Kind{
		KindExperienceResponsibilities, KindEducationDetails, KindSkillSuggestions,
		KindNewExperienceEntry, KindNewEducationEntry,
		KindInitialCVFromTitle, KindInitialCVFromJobDescription,
		KindTailorCVToJobDescription,
	}

	for _, kind := range structuredKinds {
		t.Run(string(kind), func(t *testing.T) {
			fragment, err := Normalize(kind, "input", raw)
			assert.Nil(t, fragment)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, kind, formatErr.Kind)
			assert.Len(t, formatErr.RawPrefix, 100)
			assert.True(t, strings.HasPrefix(raw, formatErr.RawPrefix))
			assert.Contains(t, err.Error(), formatErr.RawPrefix)
		})
	}
}

func TestNormalizeNewEntriesGetFreshIDs(t *testing.T) {
	rawExp := `{"id": "model-invented-id", "job_title": "SRE", "company": "Acme", "start_date": "2021", "end_date": "Present", "responsibilities": ["On-call"]}`
	fragment, err := Normalize(KindNewExperienceEntry, "input", rawExp)
	require.NoError(t, err)
	exp, ok := fragment.(ExperienceFragment)
	require.True(t, ok)
	assert.NotEqual(t, "model-invented-id", exp.Entry.ID)
	assert.NotEmpty(t, exp.Entry.ID)
	assert.Equal(t, "SRE", exp.Entry.JobTitle)

	rawEdu := `{"id": "another-fake", "degree": "MSc", "institution": "State U", "graduation_date": "2019", "details": []}`
	fragment, err = Normalize(KindNewEducationEntry, "input", rawEdu)
	require.NoError(t, err)
	edu, ok := fragment.(EducationFragment)
	require.True(t, ok)
	assert.NotEqual(t, "another-fake", edu.Entry.ID)
	assert.Equal(t, "MSc", edu.Entry.Degree)
}

func TestNormalizeInitialCVTitleFallback(t *testing.T) {
	raw := `{"summary": "A builder.", "experience": [], "education": [], "skills": []}`

	fragment, err := Normalize(KindInitialCVFromTitle, "Backend Engineer", raw)
	require.NoError(t, err)
	doc := fragment.(DocumentFragment).Document
	assert.Equal(t, "Backend Engineer", doc.PersonalInfo.Title)
	assert.Equal(t, cv.PlaceholderName, doc.PersonalInfo.Name)

	fragment, err = Normalize(KindInitialCVFromJobDescription, "a whole job posting...", raw)
	require.NoError(t, err)
	doc = fragment.(DocumentFragment).Document
	assert.Equal(t, "Your Target Role", doc.PersonalInfo.Title)
}

func TestNormalizeInitialCVDefaultsWinOverWrongTypes(t *testing.T) {
	raw := `{
		"personal_info": {
			"name": 42,
			"title": "Platform Engineer",
			"email": "pe@example.com",
			"show_address": "yes please",
			"show_email": false
		},
		"summary": "s",
		"experience": [{"id": "model-id", "job_title": "Engineer", "responsibilities": ["x"]}],
		"skills": [{"id": "model-skill", "category": "Languages", "skills": ["Go"]}]
	}`

	fragment, err := Normalize(KindInitialCVFromTitle, "Platform Engineer", raw)
	require.NoError(t, err)
	doc := fragment.(DocumentFragment).Document

	// Mistyped values lose to the baseline; well-typed ones are honored.
	assert.Equal(t, cv.PlaceholderName, doc.PersonalInfo.Name)
	assert.Equal(t, "Platform Engineer", doc.PersonalInfo.Title)
	assert.Equal(t, "pe@example.com", doc.PersonalInfo.Email)
	assert.False(t, doc.PersonalInfo.ShowAddress)
	assert.False(t, doc.PersonalInfo.ShowEmail)
	assert.False(t, doc.PersonalInfo.ShowPhoto)
	assert.True(t, doc.PersonalInfo.ShowPhone)

	// Model identifiers on entries are discarded.
	require.Len(t, doc.Experience, 1)
	assert.NotEqual(t, "model-id", doc.Experience[0].ID)
	require.Len(t, doc.Skills, 1)
	assert.NotEqual(t, "model-skill", doc.Skills[0].ID)
}

func TestNormalizeTailoringTrustsSuppliedSkillIDs(t *testing.T) {
	raw := `{
		"updated_summary": "Tailored.",
		"updated_skills": [
			{"id": "echoed-from-context", "category": "Languages", "skills": ["Go"]},
			{"category": "Cloud", "skills": ["AWS"]}
		],
		"updated_experience": [{"id": "exp-1", "responsibilities": ["Did the thing"]}]
	}`

	fragment, err := Normalize(KindTailorCVToJobDescription, "jd", raw)
	require.NoError(t, err)
	result := fragment.(TailoringFragment).Result

	require.Len(t, result.UpdatedSkills, 2)
	assert.Equal(t, "echoed-from-context", result.UpdatedSkills[0].ID)
	assert.NotEmpty(t, result.UpdatedSkills[1].ID)
	assert.Equal(t, "Tailored.", result.UpdatedSummary)
}

func TestNormalizeUnknownKind(t *testing.T) {
	_, err := Normalize(Kind("bogus"), "input", "{}")
	var unknownErr *UnknownKindError
	assert.ErrorAs(t, err, &unknownErr)
}
