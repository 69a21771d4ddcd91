package generation

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/llm"
)

// Normalize parses raw model text into the fragment shape the kind demands.
// The userInput is needed for the initial-CV title fallback. A parse failure
// yields a FormatError carrying a prefix of the raw output; a half-parsed
// value is never returned.
func Normalize(kind Kind, userInput, raw string) (Fragment, error) {
	if !allKinds[kind] {
		return nil, &UnknownKindError{Kind: string(kind)}
	}

	cleaned := llm.CleanJSONBlock(raw)

	switch kind {
	case KindSummary:
		return TextFragment{Text: strings.TrimSpace(raw)}, nil

	case KindExperienceResponsibilities, KindEducationDetails, KindSkillSuggestions:
		var items []string
		if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
			return nil, newFormatError(kind, raw, err)
		}
		return ListFragment{Items: items}, nil

	case KindNewExperienceEntry:
		var entry cv.ExperienceEntry
		if err := json.Unmarshal([]byte(cleaned), &entry); err != nil {
			return nil, newFormatError(kind, raw, err)
		}
		// The model is never trusted to supply identifiers for new entries.
		entry.ID = cv.NewEntryID()
		return ExperienceFragment{Entry: entry}, nil

	case KindNewEducationEntry:
		var entry cv.EducationEntry
		if err := json.Unmarshal([]byte(cleaned), &entry); err != nil {
			return nil, newFormatError(kind, raw, err)
		}
		entry.ID = cv.NewEntryID()
		return EducationFragment{Entry: entry}, nil

	case KindInitialCVFromTitle, KindInitialCVFromJobDescription:
		doc, err := normalizeInitialDocument(kind, userInput, cleaned)
		if err != nil {
			return nil, newFormatError(kind, raw, err)
		}
		return DocumentFragment{Document: doc}, nil

	case KindTailorCVToJobDescription:
		var result cv.TailoringResult
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			return nil, newFormatError(kind, raw, err)
		}
		// Skill IDs here echo the caller-supplied context, so a model-supplied
		// ID is trusted; only missing ones are stamped.
		for i := range result.UpdatedSkills {
			if result.UpdatedSkills[i].ID == "" {
				result.UpdatedSkills[i].ID = cv.NewEntryID()
			}
		}
		return TailoringFragment{Result: result}, nil
	}

	return nil, &UnknownKindError{Kind: string(kind)}
}

// jdTitlePlaceholder seeds the title when a job-description-seeded generation
// omits it; the user input is a whole posting, not a usable title.
const jdTitlePlaceholder = "Your Target Role"

// initialDocument mirrors the document shape while keeping personal_info
// untyped, so a model that mistypes a field cannot fail the whole parse.
type initialDocument struct {
	PersonalInfo map[string]json.RawMessage `json:"personal_info"`
	Summary      string                     `json:"summary"`
	Experience   []cv.ExperienceEntry       `json:"experience"`
	Education    []cv.EducationEntry        `json:"education"`
	Skills       []cv.SkillEntry            `json:"skills"`
}

func normalizeInitialDocument(kind Kind, userInput, cleaned string) (*cv.Document, error) {
	var parsed initialDocument
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, err
	}

	doc := &cv.Document{
		PersonalInfo: rebuildPersonalInfo(parsed.PersonalInfo),
		Summary:      parsed.Summary,
		Experience:   parsed.Experience,
		Education:    parsed.Education,
		Skills:       parsed.Skills,
	}
	if doc.Experience == nil {
		doc.Experience = []cv.ExperienceEntry{}
	}
	if doc.Education == nil {
		doc.Education = []cv.EducationEntry{}
	}
	if doc.Skills == nil {
		doc.Skills = []cv.SkillEntry{}
	}

	if doc.PersonalInfo.Title == "" {
		if kind == KindInitialCVFromTitle {
			doc.PersonalInfo.Title = userInput
		} else {
			doc.PersonalInfo.Title = jdTitlePlaceholder
		}
	}

	// Whatever identifiers the model invented are discarded.
	doc.StampIDs()

	return doc, nil
}

// rebuildPersonalInfo starts from the fixed baseline and honors a model value
// only when it is present and correctly typed; otherwise the default wins.
func rebuildPersonalInfo(fields map[string]json.RawMessage) cv.PersonalInfo {
	info := cv.DefaultPersonalInfo()
	if fields == nil {
		return info
	}

	setString(fields, "name", &info.Name)
	setString(fields, "title", &info.Title)
	setString(fields, "phone", &info.Phone)
	setString(fields, "email", &info.Email)
	setString(fields, "linkedin", &info.LinkedIn)
	setString(fields, "github", &info.GitHub)
	setString(fields, "portfolio", &info.Portfolio)
	setString(fields, "address", &info.Address)
	setString(fields, "photo_url", &info.PhotoURL)

	setBool(fields, "show_name", &info.ShowName)
	setBool(fields, "show_title", &info.ShowTitle)
	setBool(fields, "show_phone", &info.ShowPhone)
	setBool(fields, "show_email", &info.ShowEmail)
	setBool(fields, "show_linkedin", &info.ShowLinkedIn)
	setBool(fields, "show_github", &info.ShowGitHub)
	setBool(fields, "show_portfolio", &info.ShowPortfolio)
	setBool(fields, "show_address", &info.ShowAddress)
	setBool(fields, "show_photo", &info.ShowPhoto)

	return info
}

func setString(fields map[string]json.RawMessage, key string, dst *string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	if value != "" {
		*dst = value
	}
}

func setBool(fields map[string]json.RawMessage, key string, dst *bool) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*dst = value
}
