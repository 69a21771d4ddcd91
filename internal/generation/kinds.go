// Package generation implements the AI generation pipeline: prompt
// construction per generation kind and normalization of raw model output into
// typed CV fragments.
package generation

import (
	"github.com/jonathan/cv-studio/internal/llm"
)

// Kind identifies one of the nine generation request categories. The string
// values are the wire values accepted by the generate endpoint.
type Kind string

// The nine generation kinds.
const (
	KindSummary                     Kind = "summary"
	KindExperienceResponsibilities  Kind = "experience_responsibilities"
	KindEducationDetails            Kind = "education_details"
	KindSkillSuggestions            Kind = "skill_suggestions"
	KindNewExperienceEntry          Kind = "new_experience_entry"
	KindNewEducationEntry           Kind = "new_education_entry"
	KindInitialCVFromTitle          Kind = "initial_cv_from_title"
	KindInitialCVFromJobDescription Kind = "initial_cv_from_job_description"
	KindTailorCVToJobDescription    Kind = "tailor_cv_to_job_description"
)

var allKinds = map[Kind]bool{
	KindSummary:                     true,
	KindExperienceResponsibilities:  true,
	KindEducationDetails:            true,
	KindSkillSuggestions:            true,
	KindNewExperienceEntry:          true,
	KindNewEducationEntry:           true,
	KindInitialCVFromTitle:          true,
	KindInitialCVFromJobDescription: true,
	KindTailorCVToJobDescription:    true,
}

// ParseKind validates a wire value. An unrecognized kind is a caller error
// and must be rejected before any model call.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !allKinds[k] {
		return "", &UnknownKindError{Kind: s}
	}
	return k, nil
}

// WantsJSON reports whether the model should be asked for a strictly-JSON
// response. Only the summary kind produces prose.
func (k Kind) WantsJSON() bool {
	return k != KindSummary
}

// Tier maps a kind onto the model capability it needs: plain lists run on the
// lite tier, single objects on standard, whole-document work on advanced.
func (k Kind) Tier() llm.ModelTier {
	switch k {
	case KindSummary, KindExperienceResponsibilities, KindEducationDetails, KindSkillSuggestions:
		return llm.TierLite
	case KindNewExperienceEntry, KindNewEducationEntry:
		return llm.TierStandard
	default:
		return llm.TierAdvanced
	}
}
