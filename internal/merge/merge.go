// Package merge folds normalized generation fragments into CV documents.
// Every merge is copy-on-write: the input document is never mutated, so a
// caller may keep and compare the original.
package merge

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/generation"
)

// Target addresses a merge. Index is the numeric position of the owning entry
// captured when the generation request was issued; it is validated against the
// document state at merge time, not at request time.
type Target struct {
	// Index of the owning entry for list-field replacements.
	Index int
	// ApplyDetailedUpdates is the tailoring preference active for the request.
	ApplyDetailedUpdates bool
}

// MismatchError indicates a fragment that does not belong to the given
// generation kind reached the merge engine. This is a programming error, not
// a model failure.
type MismatchError struct {
	Kind     generation.Kind
	Fragment generation.Fragment
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("fragment %T does not match generation kind %s", e.Fragment, e.Kind)
}

// Apply produces a new document reflecting the fragment. A list replacement
// whose target position no longer exists is silently dropped: the entry was
// removed while the generation request was in flight, and re-inserting it
// would be worse than losing the update.
//
// TODO: surface dropped stale-target merges to the caller so the UI can tell
// the user their entry edit raced the generation (product review pending).
func Apply(doc *cv.Document, kind generation.Kind, fragment generation.Fragment, target Target) (*cv.Document, error) {
	switch f := fragment.(type) {
	case generation.TextFragment:
		if kind != generation.KindSummary {
			return nil, &MismatchError{Kind: kind, Fragment: fragment}
		}
		out := doc.Clone()
		out.Summary = f.Text
		return out, nil

	case generation.ListFragment:
		return applyList(doc, kind, f, target)

	case generation.ExperienceFragment:
		if kind != generation.KindNewExperienceEntry {
			return nil, &MismatchError{Kind: kind, Fragment: fragment}
		}
		out := doc.Clone()
		out.Experience = append(out.Experience, f.Entry)
		return out, nil

	case generation.EducationFragment:
		if kind != generation.KindNewEducationEntry {
			return nil, &MismatchError{Kind: kind, Fragment: fragment}
		}
		out := doc.Clone()
		out.Education = append(out.Education, f.Entry)
		return out, nil

	case generation.DocumentFragment:
		if kind != generation.KindInitialCVFromTitle && kind != generation.KindInitialCVFromJobDescription {
			return nil, &MismatchError{Kind: kind, Fragment: fragment}
		}
		// A generated initial CV replaces the document wholesale.
		return f.Document.Clone(), nil

	case generation.TailoringFragment:
		if kind != generation.KindTailorCVToJobDescription {
			return nil, &MismatchError{Kind: kind, Fragment: fragment}
		}
		return applyTailoring(doc, f.Result, target.ApplyDetailedUpdates), nil
	}

	return nil, &MismatchError{Kind: kind, Fragment: fragment}
}

func applyList(doc *cv.Document, kind generation.Kind, f generation.ListFragment, target Target) (*cv.Document, error) {
	out := doc.Clone()

	switch kind {
	case generation.KindExperienceResponsibilities:
		if target.Index < 0 || target.Index >= len(out.Experience) {
			return out, nil // stale target, documented no-op
		}
		out.Experience[target.Index].Responsibilities = append([]string(nil), f.Items...)

	case generation.KindEducationDetails:
		if target.Index < 0 || target.Index >= len(out.Education) {
			return out, nil
		}
		out.Education[target.Index].Details = append([]string(nil), f.Items...)

	case generation.KindSkillSuggestions:
		if target.Index < 0 || target.Index >= len(out.Skills) {
			return out, nil
		}
		out.Skills[target.Index].Skills = append([]string(nil), f.Items...)

	default:
		return nil, &MismatchError{Kind: kind, Fragment: f}
	}

	return out, nil
}

func applyTailoring(doc *cv.Document, result cv.TailoringResult, applyDetailed bool) *cv.Document {
	out := doc.Clone()

	// The tailored summary always replaces the old one, even when empty;
	// only job titles get the blank-means-keep treatment.
	out.Summary = result.UpdatedSummary

	out.Skills = rebuildSkills(doc.Skills, result.UpdatedSkills)

	byID := make(map[string]int, len(out.Experience))
	for i, entry := range out.Experience {
		byID[entry.ID] = i
	}

	for _, update := range result.UpdatedExperience {
		i, ok := byID[update.ID]
		if !ok {
			continue // entry removed while the request was in flight
		}
		out.Experience[i].Responsibilities = append([]string(nil), update.Responsibilities...)
		if applyDetailed && strings.TrimSpace(update.UpdatedJobTitle) != "" {
			out.Experience[i].JobTitle = update.UpdatedJobTitle
		}
	}

	// Suggested brand-new entries exist only under the detailed-updates
	// preference; otherwise they are ignored even if the model sent some.
	if applyDetailed {
		for _, suggestion := range result.SuggestedNewExperienceEntries {
			suggestion.ID = cv.NewEntryID()
			suggestion.Responsibilities = append([]string(nil), suggestion.Responsibilities...)
			out.Experience = append(out.Experience, suggestion)
		}
	}

	return out
}

// rebuildSkills replaces the skills list wholesale, reusing an existing
// entry's identifier when the new entry matches it by ID or, failing that, by
// category. Two existing entries sharing a category resolve to the first
// match; that ambiguity is long-standing behavior and is kept as-is.
func rebuildSkills(existing []cv.SkillEntry, updated []cv.SkillEntry) []cv.SkillEntry {
	existingIDs := make(map[string]bool, len(existing))
	byCategory := make(map[string]string, len(existing))
	for _, entry := range existing {
		existingIDs[entry.ID] = true
		if _, seen := byCategory[entry.Category]; !seen {
			byCategory[entry.Category] = entry.ID
		}
	}

	out := make([]cv.SkillEntry, 0, len(updated))
	for _, entry := range updated {
		if !existingIDs[entry.ID] {
			if id, ok := byCategory[entry.Category]; ok {
				entry.ID = id
			} else if entry.ID == "" {
				entry.ID = cv.NewEntryID()
			}
		}
		entry.Skills = append([]string(nil), entry.Skills...)
		out = append(out, entry)
	}
	return out
}
