package edi

// SkipReason classifies why a segment was not applied. Handlers return
// these instead of swallowing malformed segments, and the dispatch loop
// does the logging and counting.
type SkipReason string

const (
	SkipShortSegment       SkipReason = "short_segment"
	SkipUnknownTag         SkipReason = "unknown_tag"
	SkipUnknownEntity      SkipReason = "unknown_entity"
	SkipUnhandledQualifier SkipReason = "unhandled_qualifier"
	SkipNoContent          SkipReason = "no_content"
)

// Outcome reports how a handler disposed of one segment.
type Outcome struct {
	Applied bool
	Reason  SkipReason // set when Applied is false
}

func applied() Outcome { return Outcome{Applied: true} }

func skipped(reason SkipReason) Outcome { return Outcome{Reason: reason} }
