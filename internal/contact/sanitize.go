package contact

import "strings"

// Per-field storage bounds.
const (
	maxFullNameLength = 500
	maxEmailLength    = 500
	maxSubjectLength  = 500
	maxMessageLength  = 10000
)

// SanitizeString normalizes a value for safe storage: trim surrounding
// whitespace, strip ASCII control characters, and truncate to maxLength
// runes. Markup is not escaped; display layers are responsible for safe
// rendering. Stripping a leading control character can expose new
// surrounding whitespace, so the trim is re-applied afterwards to keep the
// function idempotent.
func SanitizeString(value string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	trimmed := strings.TrimSpace(value)
	stripped := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, trimmed)
	runes := []rune(stripped)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}
	return strings.TrimSpace(string(runes))
}

// SanitizeForm normalizes every field of a validated form for storage.
// It runs strictly after validation passes and never reports errors.
func SanitizeForm(in FormInput) FormInput {
	return FormInput{
		FullName: SanitizeString(in.FullName, maxFullNameLength),
		Email:    SanitizeString(in.Email, maxEmailLength),
		Subject:  SanitizeString(in.Subject, maxSubjectLength),
		Message:  SanitizeString(in.Message, maxMessageLength),
	}
}
