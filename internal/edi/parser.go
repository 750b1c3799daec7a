package edi

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/ediclaims/internal/model"
)

// Parser converts claims EDI text into documents. It holds no run state:
// every Parse call works on fresh accumulators, so a single Parser can be
// reused or shared across goroutines.
type Parser struct {
	log zerolog.Logger
}

// NewParser returns a Parser that reports skips and warnings through log.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse walks the input segment by segment and assembles claims. It never
// fails: malformed segments degrade to counted skips and warnings, and the
// worst possible input yields an empty document.
func (p *Parser) Parse(content string) (*model.Document, *model.ParseSummary) {
	start := time.Now()
	run := &parseRun{
		doc:     model.NewDocument(),
		summary: &model.ParseSummary{SkipsByReason: make(map[string]int64)},
		log:     p.log,
	}
	run.builder = newClaimBuilder(p.log, run.countWarning)

	for _, segment := range SplitSegments(content) {
		run.dispatch(segment)
	}
	run.finalize()

	run.summary.Duration = time.Since(start)
	return run.doc, run.summary
}

// parseRun is the per-call state: the document under construction, the
// in-flight claim builder, and the counters.
type parseRun struct {
	doc     *model.Document
	builder *claimBuilder
	summary *model.ParseSummary
	log     zerolog.Logger
}

func (r *parseRun) countWarning() { r.summary.Warnings++ }

// dispatch applies one segment and records the outcome. CLM closes the
// in-flight claim before the new header is touched, even when the CLM
// itself turns out to be too short to apply.
func (r *parseRun) dispatch(segment string) {
	fields := SplitFields(segment)
	tag := fields[0]
	r.summary.SegmentsSeen++

	var out Outcome
	switch tag {
	case TagCLM:
		r.finalize()
		out = r.builder.applyCLM(fields)
	case TagNM1:
		out = r.builder.applyNM1(fields)
	case TagN3:
		out = r.builder.applyN3(fields)
	case TagN4:
		out = r.builder.applyN4(fields)
	case TagDMG:
		out = r.builder.applyDMG(fields)
	case TagHI:
		out = r.builder.applyHI(fields)
	case TagSV1:
		out = r.builder.applySV1(fields)
	case TagDTP:
		out = r.builder.applyDTP(fields)
	default:
		out = skipped(SkipUnknownTag)
	}

	if out.Applied {
		r.summary.SegmentsApplied++
		return
	}
	r.summary.SegmentsSkipped++
	r.summary.SkipsByReason[string(out.Reason)]++

	// A short CLM loses the whole claim header, which deserves more than a
	// debug line; every other skip is routine.
	if tag == TagCLM && out.Reason == SkipShortSegment {
		r.summary.Warnings++
		r.log.Warn().Str("segment", segment).Msg("claim segment missing required fields, skipped")
		return
	}
	r.log.Debug().
		Str("tag", tag).
		Str("reason", string(out.Reason)).
		Str("segment", segment).
		Msg("segment skipped")
}

// finalize appends the in-flight claim when it accumulated anything and
// swaps in a fresh builder.
func (r *parseRun) finalize() {
	if !r.builder.empty() {
		r.doc.Claims = append(r.doc.Claims, r.builder.claim)
		r.summary.ClaimsProduced++
		r.summary.ServiceLines += int64(len(r.builder.claim.Services))
	}
	r.builder = newClaimBuilder(r.log, r.countWarning)
}
