package generation

import "fmt"

// rawPrefixLen bounds how much of the offending model output a FormatError
// carries for diagnosis.
const rawPrefixLen = 100

// UnknownKindError indicates the caller supplied an unrecognized generation
// kind. No model call is attempted.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown generation kind: %q", e.Kind)
}

// MissingInputError indicates a required request field was empty. No model
// call is attempted.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// FormatError indicates the model output failed to parse into the shape the
// kind demands. It carries a prefix of the raw output for diagnosis and is
// never accompanied by a half-parsed value.
type FormatError struct {
	Kind      Kind
	RawPrefix string
	Cause     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("model output for %s is not valid %s (starts with: %q): %v",
		e.Kind, expectedShape(e.Kind), e.RawPrefix, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

func newFormatError(kind Kind, raw string, cause error) *FormatError {
	prefix := raw
	if len(prefix) > rawPrefixLen {
		prefix = prefix[:rawPrefixLen]
	}
	return &FormatError{Kind: kind, RawPrefix: prefix, Cause: cause}
}

func expectedShape(kind Kind) string {
	switch kind {
	case KindExperienceResponsibilities, KindEducationDetails, KindSkillSuggestions:
		return "JSON array of strings"
	case KindNewExperienceEntry, KindNewEducationEntry:
		return "JSON object"
	case KindInitialCVFromTitle, KindInitialCVFromJobDescription:
		return "CV document JSON"
	case KindTailorCVToJobDescription:
		return "tailoring result JSON"
	default:
		return "text"
	}
}
