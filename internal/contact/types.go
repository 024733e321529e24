// Package contact implements the contact-form submission pipeline: typed
// body decoding, field validation, and storage sanitization.
package contact

import "encoding/json"

// FormInput is the contact form shape (client -> API). It is ephemeral and
// never persisted raw; the sanitizer runs before storage.
type FormInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// FieldErrors maps failed form fields (by their JSON names) to
// human-readable messages. An empty map means the input is valid.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// DecodeForm coerces a raw JSON body into a FormInput. Missing or
// non-string fields become the empty string; that is defensive
// normalization, not validation. The second return value is false when the
// body is not a JSON object at all.
func DecodeForm(body []byte) (FormInput, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return FormInput{}, false
	}
	return FormInput{
		FullName: stringField(raw, "full_name"),
		Email:    stringField(raw, "email"),
		Subject:  stringField(raw, "subject"),
		Message:  stringField(raw, "message"),
	}, true
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}
