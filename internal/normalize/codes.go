package normalize

import "strings"

// CompositeValue extracts the value portion of a qualifier:value composite
// field: the component between the first and second colon, trimmed. ok is
// false when the field contains no component separator.
func CompositeValue(s string) (string, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// TrimOrNil trims a field and returns nil when nothing remains. This is the
// blank-means-absent rule applied to most segment fields.
func TrimOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
