package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/prompts"
)

// Context carries the optional request context for prompt construction. Which
// fields matter depends on the kind.
type Context struct {
	JobTitle      string `json:"job_title,omitempty"`
	Company       string `json:"company,omitempty"`
	Degree        string `json:"degree,omitempty"`
	Institution   string `json:"institution,omitempty"`
	SkillCategory string `json:"skill_category,omitempty"`

	// ApplyDetailedExperienceUpdates permits job-title rewrites and brand-new
	// experience suggestions during tailoring.
	ApplyDetailedExperienceUpdates bool `json:"apply_detailed_experience_updates,omitempty"`

	// CV is the existing document for tailoring requests.
	CV *cv.Document `json:"cv,omitempty"`
}

// BuildPrompt maps (kind, user input, context) to the instruction string sent
// to the model and reports whether a strictly-JSON response should be
// requested. Unknown kinds and missing required inputs are rejected here,
// before any model call.
func BuildPrompt(kind Kind, userInput string, ctx Context) (string, bool, error) {
	if !allKinds[kind] {
		return "", false, &UnknownKindError{Kind: string(kind)}
	}
	if strings.TrimSpace(userInput) == "" {
		return "", false, &MissingInputError{Field: "user_input"}
	}

	switch kind {
	case KindSummary:
		hint := ""
		if ctx.JobTitle != "" {
			hint = fmt.Sprintf("The candidate's target role is %s.\n", ctx.JobTitle)
		}
		return format(kind, map[string]string{"Input": userInput, "ContextHint": hint}), false, nil

	case KindExperienceResponsibilities:
		return format(kind, map[string]string{
			"Input":    userInput,
			"JobTitle": orDefault(ctx.JobTitle, "the role described"),
			"Company":  orDefault(ctx.Company, "the company"),
		}), true, nil

	case KindEducationDetails:
		return format(kind, map[string]string{
			"Input":       userInput,
			"Degree":      orDefault(ctx.Degree, "the degree"),
			"Institution": orDefault(ctx.Institution, "the institution"),
		}), true, nil

	case KindSkillSuggestions:
		if strings.TrimSpace(ctx.SkillCategory) == "" {
			return "", false, &MissingInputError{Field: "skill_category"}
		}
		return format(kind, map[string]string{
			"Input":         userInput,
			"SkillCategory": ctx.SkillCategory,
		}), true, nil

	case KindNewExperienceEntry, KindNewEducationEntry:
		return format(kind, map[string]string{"Input": userInput}), true, nil

	case KindInitialCVFromTitle, KindInitialCVFromJobDescription:
		return format(kind, map[string]string{
			"Input":           userInput,
			"ExperienceCount": experienceCountFor(userInput),
		}), true, nil

	case KindTailorCVToJobDescription:
		if ctx.CV == nil {
			return "", false, &MissingInputError{Field: "cv"}
		}
		cvData, err := marshalTailorView(ctx.CV)
		if err != nil {
			return "", false, fmt.Errorf("failed to encode CV context: %w", err)
		}
		rulesKey := "tailor_detail_rules_off"
		if ctx.ApplyDetailedExperienceUpdates {
			rulesKey = "tailor_detail_rules_on"
		}
		return format(kind, map[string]string{
			"Input":       userInput,
			"CVData":      cvData,
			"DetailRules": prompts.MustGet("generation.json", rulesKey),
		}), true, nil
	}

	return "", false, &UnknownKindError{Kind: string(kind)}
}

func format(kind Kind, data map[string]string) string {
	return prompts.Format(prompts.MustGet("generation.json", string(kind)), data)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?`)

// seniorYearsThreshold is the years-of-experience cue that marks a posting as
// senior when no title keyword does.
const seniorYearsThreshold = 7

// experienceCountFor bumps the requested experience-entry count for senior
// postings: title keywords or a years-of-experience threshold.
func experienceCountFor(input string) string {
	lower := strings.ToLower(input)
	for _, cue := range []string{"senior", "lead", "staff", "principal"} {
		if strings.Contains(lower, cue) {
			return "2-3"
		}
	}
	for _, match := range yearsPattern.FindAllStringSubmatch(input, -1) {
		if years, err := strconv.Atoi(match[1]); err == nil && years >= seniorYearsThreshold {
			return "2-3"
		}
	}
	return "1-2"
}

// tailorView is the slice of the CV embedded into the tailoring prompt: just
// enough for the model to rewrite against, nothing else.
type tailorView struct {
	Summary    string                 `json:"summary"`
	Skills     []tailorSkillView      `json:"skills"`
	Experience []tailorExperienceView `json:"experience"`
}

type tailorSkillView struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type tailorExperienceView struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	Responsibilities []string `json:"responsibilities"`
}

func marshalTailorView(doc *cv.Document) (string, error) {
	view := tailorView{
		Summary:    doc.Summary,
		Skills:     make([]tailorSkillView, 0, len(doc.Skills)),
		Experience: make([]tailorExperienceView, 0, len(doc.Experience)),
	}
	for _, s := range doc.Skills {
		view.Skills = append(view.Skills, tailorSkillView{ID: s.ID, Category: s.Category, Skills: s.Skills})
	}
	for _, e := range doc.Experience {
		view.Experience = append(view.Experience, tailorExperienceView{
			ID:               e.ID,
			JobTitle:         e.JobTitle,
			Company:          e.Company,
			Responsibilities: e.Responsibilities,
		})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
