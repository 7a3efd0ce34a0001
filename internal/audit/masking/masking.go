// Package masking redacts client contact details and credentials before
// they are written to the audit trail.
package masking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const redacted = "****"

// Metadata returns a copy of fields with sensitive values masked according to
// their key. Nested maps are walked; other values pass through.
func Metadata(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = Field(key, value)
	}
	return out
}

// Field masks a single value based on what its key names.
func Field(key string, value any) any {
	if nested, ok := value.(map[string]any); ok {
		return Metadata(nested)
	}
	str, ok := value.(string)
	if !ok {
		return value
	}
	switch k := strings.ToLower(key); {
	case strings.Contains(k, "password"), strings.Contains(k, "token"), strings.Contains(k, "secret"):
		return redacted
	case strings.Contains(k, "email"), k == "username":
		return Email(str)
	case strings.Contains(k, "phone"), strings.Contains(k, "telephone"), k == "contact":
		return Phone(str)
	default:
		return value
	}
}

// Email keeps the first character of the local part and the domain. Values
// that are not addresses are redacted whole, since a failed login may carry
// a password typed into the username field.
func Email(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return redacted
	}
	_, size := utf8.DecodeRuneInString(value)
	return value[:size] + redacted + value[at:]
}

// Phone keeps the last two digits.
func Phone(value string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
	if len(digits) <= 2 {
		return redacted
	}
	return redacted + digits[len(digits)-2:]
}
