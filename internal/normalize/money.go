package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a decimal monetary field. Returns nil when the field
// is blank, not a number, or not finite (non-finite values cannot survive
// JSON encoding).
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// DollarsToCents converts a nullable float64 dollar amount to nullable int64 cents.
// Uses math.Round to avoid truncation bias.
func DollarsToCents(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := int64(math.Round(*v * 100))
	return &c
}
