// Package cv defines the canonical CV document model shared by the editor API,
// the generation pipeline, and the merge engine.
package cv

import "github.com/google/uuid"

// PersonalInfo holds the header block of a CV. Every displayable field carries
// its own visibility flag; a field is rendered only if its value is non-empty
// AND its flag is true.
type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url"`

	ShowName      bool `json:"show_name"`
	ShowTitle     bool `json:"show_title"`
	ShowPhone     bool `json:"show_phone"`
	ShowEmail     bool `json:"show_email"`
	ShowLinkedIn  bool `json:"show_linkedin"`
	ShowGitHub    bool `json:"show_github"`
	ShowPortfolio bool `json:"show_portfolio"`
	ShowAddress   bool `json:"show_address"`
	ShowPhoto     bool `json:"show_photo"`
}

// ExperienceEntry is a single employment record. Responsibilities are ordered;
// the order is meaningful and preserved everywhere. EndDate is free text and
// "Present" is a valid sentinel.
type ExperienceEntry struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is a single education record. Details may be empty.
type EducationEntry struct {
	ID             string   `json:"id"`
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduation_date"`
	Details        []string `json:"details"`
}

// SkillEntry groups an ordered list of skills under a free-text category label.
type SkillEntry struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Document is the complete structured CV. Entries in the three lists are
// correlated by ID, never by array position.
type Document struct {
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Summary      string            `json:"summary"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []SkillEntry      `json:"skills"`
}

// TailoredExperience is one per-entry update inside a TailoringResult. The ID
// echoes an existing experience entry; UpdatedJobTitle is optional.
type TailoredExperience struct {
	ID               string   `json:"id"`
	Responsibilities []string `json:"responsibilities"`
	UpdatedJobTitle  string   `json:"updated_job_title,omitempty"`
}

// TailoringResult is the transient output of a tailor-to-job-description
// generation. It is never persisted as-is; the merge engine folds it into a
// Document.
type TailoringResult struct {
	UpdatedSummary                string               `json:"updated_summary"`
	UpdatedSkills                 []SkillEntry         `json:"updated_skills"`
	UpdatedExperience             []TailoredExperience `json:"updated_experience"`
	SuggestedNewExperienceEntries []ExperienceEntry    `json:"suggested_new_experience_entries,omitempty"`
}

// PlaceholderName is the baseline name used until the user fills in their own.
const PlaceholderName = "Your Name (Update Me!)"

// NewEntryID returns a fresh unique identifier for a list entry. Identifiers
// are assigned at creation and never reused.
func NewEntryID() string {
	return uuid.New().String()
}

// DefaultPersonalInfo returns the baseline header block: placeholder name,
// empty contact strings, contact fields visible, address and photo hidden.
func DefaultPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name:          PlaceholderName,
		ShowName:      true,
		ShowTitle:     true,
		ShowPhone:     true,
		ShowEmail:     true,
		ShowLinkedIn:  true,
		ShowGitHub:    true,
		ShowPortfolio: true,
		ShowAddress:   false,
		ShowPhoto:     false,
	}
}

// NewDocument returns an empty document with default personal info.
func NewDocument() *Document {
	return &Document{
		PersonalInfo: DefaultPersonalInfo(),
		Experience:   []ExperienceEntry{},
		Education:    []EducationEntry{},
		Skills:       []SkillEntry{},
	}
}

// Clone returns a deep, independent copy of the document. Mutating the copy
// never affects the original; the merge engine relies on this.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	out := &Document{
		PersonalInfo: d.PersonalInfo,
		Summary:      d.Summary,
	}

	out.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		e.Responsibilities = cloneStrings(e.Responsibilities)
		out.Experience[i] = e
	}

	out.Education = make([]EducationEntry, len(d.Education))
	for i, e := range d.Education {
		e.Details = cloneStrings(e.Details)
		out.Education[i] = e
	}

	out.Skills = make([]SkillEntry, len(d.Skills))
	for i, s := range d.Skills {
		s.Skills = cloneStrings(s.Skills)
		out.Skills[i] = s
	}

	return out
}

// EnsureIDs stamps a fresh identifier on every entry that is missing one.
// Existing identifiers are left untouched.
func (d *Document) EnsureIDs() {
	for i := range d.Experience {
		if d.Experience[i].ID == "" {
			d.Experience[i].ID = NewEntryID()
		}
	}
	for i := range d.Education {
		if d.Education[i].ID == "" {
			d.Education[i].ID = NewEntryID()
		}
	}
	for i := range d.Skills {
		if d.Skills[i].ID == "" {
			d.Skills[i].ID = NewEntryID()
		}
	}
}

// StampIDs replaces every entry identifier with a freshly generated one,
// discarding whatever was there. Used when entries come from an untrusted
// source (the model invents IDs we must never honor).
func (d *Document) StampIDs() {
	for i := range d.Experience {
		d.Experience[i].ID = NewEntryID()
	}
	for i := range d.Education {
		d.Education[i].ID = NewEntryID()
	}
	for i := range d.Skills {
		d.Skills[i].ID = NewEntryID()
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
