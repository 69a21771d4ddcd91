package generation

import "github.com/jonathan/cv-studio/internal/cv"

// Fragment is the normalized output of one generation request. It is a closed
// set: exactly one variant exists per response shape, and the merge engine
// switches over them exhaustively.
type Fragment interface {
	fragment()
}

// TextFragment is free prose (the summary kind).
type TextFragment struct {
	Text string
}

// ListFragment is a replacement list of strings (responsibilities, details,
// skill suggestions).
type ListFragment struct {
	Items []string
}

// ExperienceFragment is one new experience entry with a server-stamped ID.
type ExperienceFragment struct {
	Entry cv.ExperienceEntry
}

// EducationFragment is one new education entry with a server-stamped ID.
type EducationFragment struct {
	Entry cv.EducationEntry
}

// DocumentFragment is a complete generated CV document.
type DocumentFragment struct {
	Document *cv.Document
}

// TailoringFragment is a full tailoring result.
type TailoringFragment struct {
	Result cv.TailoringResult
}

func (TextFragment) fragment()       {}
func (ListFragment) fragment()       {}
func (ExperienceFragment) fragment() {}
func (EducationFragment) fragment()  {}
func (DocumentFragment) fragment()   {}
func (TailoringFragment) fragment()  {}
