package normalize

import "time"

// ediDateLayout is the 8-digit CCYYMMDD form carried by DMG and DTP segments.
const ediDateLayout = "20060102"

// isoDateLayout is the output form used in documents.
const isoDateLayout = "2006-01-02"

// ConvertDate converts an 8-digit CCYYMMDD date to YYYY-MM-DD.
// Unparseable input is returned unchanged so callers can store the raw
// value instead of dropping the field.
func ConvertDate(s string) string {
	t, err := time.Parse(ediDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(isoDateLayout)
}
