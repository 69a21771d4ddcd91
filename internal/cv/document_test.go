package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	original := &Document{
		PersonalInfo: DefaultPersonalInfo(),
		Summary:      "Backend engineer with 8 years of experience.",
		Experience: []ExperienceEntry{
			{
				ID:               "exp-1",
				JobTitle:         "Backend Engineer",
				Company:          "Acme Corp",
				StartDate:        "2019",
				EndDate:          "Present",
				Responsibilities: []string{"Built APIs", "Ran migrations"},
			},
		},
		Education: []EducationEntry{
			{ID: "edu-1", Degree: "BSc CS", Institution: "State University", Details: []string{"Dean's list"}},
		},
		Skills: []SkillEntry{
			{ID: "skill-1", Category: "Languages", Skills: []string{"Go", "SQL"}},
		},
	}

	clone := original.Clone()
	require.NotNil(t, clone)

	clone.Summary = "changed"
	clone.PersonalInfo.Name = "Someone Else"
	clone.Experience[0].Responsibilities[0] = "changed"
	clone.Education[0].Details[0] = "changed"
	clone.Skills[0].Skills = append(clone.Skills[0].Skills, "Rust")

	assert.Equal(t, "Backend engineer with 8 years of experience.", original.Summary)
	assert.Equal(t, PlaceholderName, original.PersonalInfo.Name)
	assert.Equal(t, "Built APIs", original.Experience[0].Responsibilities[0])
	assert.Equal(t, "Dean's list", original.Education[0].Details[0])
	assert.Len(t, original.Skills[0].Skills, 2)
}

func TestCloneNil(t *testing.T) {
	var d *Document
	assert.Nil(t, d.Clone())
}

func TestEnsureIDsPreservesExisting(t *testing.T) {
	doc := &Document{
		Experience: []ExperienceEntry{{ID: "keep-me"}, {}},
		Education:  []EducationEntry{{}},
		Skills:     []SkillEntry{{ID: "skill-1"}, {}},
	}

	doc.EnsureIDs()

	assert.Equal(t, "keep-me", doc.Experience[0].ID)
	assert.NotEmpty(t, doc.Experience[1].ID)
	assert.NotEmpty(t, doc.Education[0].ID)
	assert.Equal(t, "skill-1", doc.Skills[0].ID)
	assert.NotEmpty(t, doc.Skills[1].ID)
	assert.NotEqual(t, doc.Experience[1].ID, doc.Education[0].ID)
}

func TestStampIDsDiscardsModelSupplied(t *testing.T) {
	doc := &Document{
		Experience: []ExperienceEntry{{ID: "model-made-this-up"}},
		Skills:     []SkillEntry{{ID: "also-invented"}},
	}

	doc.StampIDs()

	assert.NotEqual(t, "model-made-this-up", doc.Experience[0].ID)
	assert.NotEqual(t, "also-invented", doc.Skills[0].ID)
	assert.NotEmpty(t, doc.Experience[0].ID)
}

func TestDefaultPersonalInfoVisibility(t *testing.T) {
	info := DefaultPersonalInfo()

	assert.Equal(t, PlaceholderName, info.Name)
	assert.True(t, info.ShowPhone)
	assert.True(t, info.ShowEmail)
	assert.True(t, info.ShowLinkedIn)
	assert.True(t, info.ShowGitHub)
	assert.True(t, info.ShowPortfolio)
	assert.False(t, info.ShowAddress)
	assert.False(t, info.ShowPhoto)
}
