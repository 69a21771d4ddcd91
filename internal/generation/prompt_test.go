package generation

import (
	"testing"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptUnknownKind(t *testing.T) {
	_, _, err := BuildPrompt(Kind("resume_of_dreams"), "anything", Context{})
	var unknownErr *UnknownKindError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "resume_of_dreams", unknownErr.Kind)
}

func TestBuildPromptMissingInput(t *testing.T) {
	_, _, err := BuildPrompt(KindSummary, "   ", Context{})
	var missingErr *MissingInputError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "user_input", missingErr.Field)
}

func TestBuildPromptJSONFlagPerKind(t *testing.T) {
	doc := cv.NewDocument()
	tests := []struct {
		kind     Kind
		ctx      Context
		wantJSON bool
	}{
		{KindSummary, Context{}, false},
		{KindExperienceResponsibilities, Context{JobTitle: "Engineer", Company: "Acme"}, true},
		{KindEducationDetails, Context{Degree: "BSc", Institution: "State U"}, true},
		{KindSkillSuggestions, Context{SkillCategory: "DevOps"}, true},
		{KindNewExperienceEntry, Context{}, true},
		{KindNewEducationEntry, Context{}, true},
		{KindInitialCVFromTitle, Context{}, true},
		{KindInitialCVFromJobDescription, Context{}, true},
		{KindTailorCVToJobDescription, Context{CV: doc}, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			prompt, wantJSON, err := BuildPrompt(tt.kind, "some candidate input", tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, wantJSON)
			assert.Contains(t, prompt, "some candidate input")
		})
	}
}

func TestBuildPromptSkillSuggestionsRequiresCategory(t *testing.T) {
	_, _, err := BuildPrompt(KindSkillSuggestions, "cloud tooling", Context{})
	var missingErr *MissingInputError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "skill_category", missingErr.Field)
}

func TestBuildPromptTailorRequiresCV(t *testing.T) {
	_, _, err := BuildPrompt(KindTailorCVToJobDescription, "a job description", Context{})
	var missingErr *MissingInputError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "cv", missingErr.Field)
}

func TestBuildPromptTailorEmbedsOnlyRelevantSlice(t *testing.T) {
	doc := &cv.Document{
		PersonalInfo: cv.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary:      "Seasoned engineer.",
		Experience: []cv.ExperienceEntry{{
			ID:               "exp-1",
			JobTitle:         "Engineer",
			Company:          "Acme",
			Location:         "Remote",
			StartDate:        "2020",
			EndDate:          "Present",
			Responsibilities: []string{"Shipped things"},
		}},
		Skills: []cv.SkillEntry{{ID: "skill-1", Category: "Languages", Skills: []string{"Go"}}},
	}

	prompt, _, err := BuildPrompt(KindTailorCVToJobDescription, "We need a Go platform engineer.", Context{CV: doc})
	require.NoError(t, err)

	assert.Contains(t, prompt, "exp-1")
	assert.Contains(t, prompt, "skill-1")
	assert.Contains(t, prompt, "Seasoned engineer.")
	assert.Contains(t, prompt, "We need a Go platform engineer.")
	// Personal info never leaves the server in a tailoring prompt.
	assert.NotContains(t, prompt, "Jane Doe")
	assert.NotContains(t, prompt, "jane@example.com")
	// The entry's location and dates are not part of the tailoring view.
	assert.NotContains(t, prompt, "Remote")
}

func TestBuildPromptTailorDetailPreference(t *testing.T) {
	doc := cv.NewDocument()

	on, _, err := BuildPrompt(KindTailorCVToJobDescription, "jd", Context{CV: doc, ApplyDetailedExperienceUpdates: true})
	require.NoError(t, err)
	assert.Contains(t, on, "MAY update an entry's job title")

	off, _, err := BuildPrompt(KindTailorCVToJobDescription, "jd", Context{CV: doc})
	require.NoError(t, err)
	assert.Contains(t, off, "Do NOT change job titles")
	assert.Contains(t, off, "must be an empty array")
}

func TestExperienceCountFor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "Backend Engineer", "1-2"},
		{"senior title", "Senior Backend Engineer", "2-3"},
		{"lead title", "Tech Lead, Payments", "2-3"},
		{"staff keyword", "Staff Engineer", "2-3"},
		{"years threshold met", "We require 8+ years of Go experience", "2-3"},
		{"years threshold not met", "2+ years of experience required", "1-2"},
		{"years word boundary", "10 years building infrastructure", "2-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, experienceCountFor(tt.input))
		})
	}
}

func TestBuildPromptSummaryIncludesRoleHint(t *testing.T) {
	prompt, wantJSON, err := BuildPrompt(KindSummary, "Ten years of backend work", Context{JobTitle: "Platform Engineer"})
	require.NoError(t, err)
	assert.False(t, wantJSON)
	assert.Contains(t, prompt, "Platform Engineer")
}
