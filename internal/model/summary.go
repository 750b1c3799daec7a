package model

import "time"

// ParseSummary captures metrics from a single parse run.
type ParseSummary struct {
	SegmentsSeen    int64
	SegmentsApplied int64
	SegmentsSkipped int64
	Warnings        int64
	ClaimsProduced  int64
	ServiceLines    int64
	SkipsByReason   map[string]int64
	Duration        time.Duration
}

// LoadSummary captures metrics from a single warehouse load run.
type LoadSummary struct {
	FilePath        string
	FileSHA256      string
	ClaimFileID     int64
	LoadBatchID     string
	ClaimsLoaded    int64
	PartiesLoaded   int64
	DiagnosesLoaded int64
	ServicesLoaded  int64
	AlreadyLoaded   bool
	DurationParse   time.Duration
	DurationStage   time.Duration
	DurationTotal   time.Duration
}

// BatchSummary captures metrics from a multi-file batch conversion.
type BatchSummary struct {
	FilesTotal  int
	FilesOK     int
	FilesFailed int
	ClaimsTotal int64
	Duration    time.Duration
}
