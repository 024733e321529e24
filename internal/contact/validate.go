package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRegex is a practical RFC 5322 subset: printable local part, then one
// or more dot-separated DNS-label-like segments (1-63 chars, alphanumeric
// with interior hyphens only).
var emailRegex = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

const (
	minFullNameLength = 2
	minMessageLength  = 10
)

// IsValidEmail reports whether value (after trimming) looks like a
// deliverable email address.
func IsValidEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

// ValidateForm checks the contact form input and returns field-level
// errors. All failing fields are reported together; an empty result means
// the input is valid. The subject field is deliberately not validated.
func ValidateForm(in FormInput) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if len([]rune(name)) < minFullNameLength {
		if name == "" {
			errs["full_name"] = "Full name is required."
		} else {
			errs["full_name"] = fmt.Sprintf("Full name must be at least %d characters.", minFullNameLength)
		}
	}

	if email == "" {
		errs["email"] = "Email is required."
	} else if !IsValidEmail(email) {
		errs["email"] = "Please enter a valid email address."
	}

	if len([]rune(message)) < minMessageLength {
		if message == "" {
			errs["message"] = "Message is required."
		} else {
			errs["message"] = fmt.Sprintf("Message must be at least %d characters.", minMessageLength)
		}
	}

	return errs
}
