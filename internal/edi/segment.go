// Package edi parses a simplified X12-style claims interchange: flat
// ~-terminated segments with *-separated fields and :-separated composite
// components, with no envelope or loop structure.
package edi

import "strings"

// Interchange delimiters. Fixed for this subset; full X12 would read them
// from the ISA envelope, which is out of scope.
const (
	SegmentTerminator  = "~"
	ElementSeparator   = "*"
	ComponentSeparator = ":"
)

// Segment tags recognized by the claim builder.
const (
	TagCLM = "CLM" // claim header, starts a new claim
	TagNM1 = "NM1" // individual or organizational name
	TagN3  = "N3"  // address street lines
	TagN4  = "N4"  // address city/state/zip
	TagDMG = "DMG" // demographics
	TagHI  = "HI"  // diagnosis codes
	TagSV1 = "SV1" // professional service line
	TagDTP = "DTP" // date or date range
)

// NM1 entity identifier codes mapped to claim roles.
const (
	EntityInsured           = "IL"
	EntityPatient           = "QC"
	EntityRenderingProvider = "82"
	EntityReferringProvider = "DN"
	EntityServiceFacility   = "77"
)

// QualifierServiceDate is the only DTP qualifier the builder acts on.
const QualifierServiceDate = "472"

// SplitSegments trims the input, splits on the segment terminator, trims
// each chunk, and drops empty ones.
func SplitSegments(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	raw := strings.Split(content, SegmentTerminator)
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// SplitFields splits a segment into its fields. Field 0 is the tag. Values
// are not trimmed here; handlers trim selectively.
func SplitFields(segment string) []string {
	return strings.Split(segment, ElementSeparator)
}
