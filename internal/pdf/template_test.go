package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/cv"
)

func renderDoc(t *testing.T, doc *cv.Document) string {
	html, err := RenderHTML(doc)
	require.NoError(t, err)
	return html
}

func TestRenderHonorsVisibilityFlags(t *testing.T) {
	doc := cv.NewDocument()
	doc.PersonalInfo.Name = "Ada Lovelace"
	doc.PersonalInfo.Phone = "555-0100"
	doc.PersonalInfo.ShowPhone = false
	doc.PersonalInfo.Address = "1 Analytical Way"
	doc.PersonalInfo.ShowAddress = true
	doc.PersonalInfo.Email = "ada@example.com"

	html := renderDoc(t, doc)

	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "ada@example.com")
	assert.Contains(t, html, "1 Analytical Way")
	assert.NotContains(t, html, "555-0100", "hidden fields never reach the output")
}

func TestRenderSkipsEmptyVisibleFields(t *testing.T) {
	doc := cv.NewDocument()
	// LinkedIn is visible by default but empty; no stray separator may appear.
	html := renderDoc(t, doc)
	assert.NotContains(t, html, "<span></span>")
}

func TestRenderSections(t *testing.T) {
	doc := cv.NewDocument()
	doc.Summary = "Engineer of engines."
	doc.Experience = []cv.ExperienceEntry{{
		ID: cv.NewEntryID(), JobTitle: "Engineer", Company: "Acme",
		StartDate: "2020", EndDate: "Present",
		Responsibilities: []string{"Built the thing"},
	}}
	doc.Education = []cv.EducationEntry{{
		ID: cv.NewEntryID(), Degree: "BSc", Institution: "State U", GraduationDate: "2019",
	}}
	doc.Skills = []cv.SkillEntry{{
		ID: cv.NewEntryID(), Category: "Languages", Skills: []string{"Go", "SQL"},
	}}

	html := renderDoc(t, doc)

	assert.Contains(t, html, "Engineer of engines.")
	assert.Contains(t, html, "Built the thing")
	assert.Contains(t, html, "2020 &ndash; Present")
	assert.Contains(t, html, "State U")
	assert.Contains(t, html, "Go, SQL")
}

func TestRenderEscapesUserContent(t *testing.T) {
	doc := cv.NewDocument()
	doc.Summary = `<script>alert("x")</script>`

	html := renderDoc(t, doc)
	assert.NotContains(t, html, `<script>alert`)
}
