package edi

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gyeh/ediclaims/internal/model"
	"github.com/gyeh/ediclaims/internal/normalize"
)

// facilityRouting tracks where address segments land. The zero value routes
// to the claim; NM1*77 switches routing to the facility for the remainder
// of the claim.
type facilityRouting int

const (
	routeClaim facilityRouting = iota
	routeFacility
)

// claimBuilder accumulates one claim. The parser creates a fresh builder at
// every claim boundary, so routing state cannot leak across claims.
type claimBuilder struct {
	claim   *model.Claim
	routing facilityRouting
	touched bool
	log     zerolog.Logger
	warn    func()
}

func newClaimBuilder(log zerolog.Logger, warn func()) *claimBuilder {
	return &claimBuilder{claim: &model.Claim{}, log: log, warn: warn}
}

// empty reports whether no segment has contributed to this claim yet.
// Empty claims are dropped at finalize instead of being emitted.
func (b *claimBuilder) empty() bool { return !b.touched }

// applyCLM fills the claim header. Fields: 1 claim number, 2 total charge,
// 3 claim type (stored raw, composite separators preserved).
func (b *claimBuilder) applyCLM(fields []string) Outcome {
	if len(fields) < 4 {
		return skipped(SkipShortSegment)
	}
	b.claim.ClaimHeader = &model.ClaimHeader{
		ClaimNumber: normalize.TrimOrNil(fields[1]),
		Amount:      b.parseAmount(fields[2], "claim_amount"),
		ClaimType:   normalize.TrimOrNil(fields[3]),
	}
	b.touched = true
	return applied()
}

// applyNM1 assigns a party or activates the service facility. Fields:
// 1 entity code, 3 last name, 4 first name, 5 middle name, 9 identifier.
func (b *claimBuilder) applyNM1(fields []string) Outcome {
	if len(fields) < 2 {
		return skipped(SkipShortSegment)
	}
	entity := strings.TrimSpace(fields[1])

	if entity == EntityServiceFacility {
		// Facility name and id keep present-but-blank fields as empty
		// strings; only a missing field becomes null.
		fac := &model.Facility{}
		if len(fields) > 3 {
			name := strings.TrimSpace(fields[3])
			fac.Name = &name
		}
		if len(fields) > 9 {
			id := strings.TrimSpace(fields[9])
			fac.ID = &id
		}
		b.claim.ServiceFacility = fac
		b.routing = routeFacility
		b.touched = true
		return applied()
	}

	party := &model.Party{
		LastName:   fieldAt(fields, 3),
		FirstName:  fieldAt(fields, 4),
		MiddleName: fieldAt(fields, 5),
		ID:         fieldAt(fields, 9),
	}
	switch entity {
	case EntityInsured:
		b.claim.Insured = party
	case EntityPatient:
		b.claim.Patient = party
	case EntityRenderingProvider:
		b.claim.RenderingProvider = party
	case EntityReferringProvider:
		b.claim.ReferringProvider = party
	default:
		return skipped(SkipUnknownEntity)
	}
	b.touched = true
	return applied()
}

// applyN3 sets the street group. While the facility is active the group
// replaces the facility address outright; at the claim root it merges with
// any locality already present.
func (b *claimBuilder) applyN3(fields []string) Outcome {
	if len(fields) < 2 {
		return skipped(SkipShortSegment)
	}
	lines := &model.AddressLines{
		Line1: normalize.TrimOrNil(fields[1]),
		Line2: fieldAt(fields, 2),
	}
	if b.routing == routeFacility {
		b.claim.ServiceFacility.Address = &model.Address{AddressLines: lines}
	} else {
		b.rootAddress().AddressLines = lines
	}
	b.touched = true
	return applied()
}

// applyN4 sets the locality group, merging into whichever address is
// active. Values are stored exactly as they appear in the segment, empty
// strings included; only N3 values get the blank-to-null treatment.
func (b *claimBuilder) applyN4(fields []string) Outcome {
	if len(fields) < 4 {
		return skipped(SkipShortSegment)
	}
	locality := &model.AddressLocality{
		City:  fields[1],
		State: fields[2],
		Zip:   fields[3],
	}
	if b.routing == routeFacility {
		b.facilityAddress().AddressLocality = locality
	} else {
		b.rootAddress().AddressLocality = locality
	}
	b.touched = true
	return applied()
}

// applyDMG replaces demographics wholesale; a bare DMG still applies and
// sets both fields to null. Fields: 2 date of birth (CCYYMMDD), 3 gender.
func (b *claimBuilder) applyDMG(fields []string) Outcome {
	demo := &model.Demographics{Gender: fieldAt(fields, 3)}
	if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
		dob := normalize.ConvertDate(fields[2])
		demo.DateOfBirth = &dob
	}
	b.claim.Demographics = demo
	b.touched = true
	return applied()
}

// applyHI harvests diagnosis codes from qualifier:code composite fields.
// Blank fields and fields without a separator contribute nothing. A
// non-empty harvest replaces the previous list; an empty one leaves it be.
func (b *claimBuilder) applyHI(fields []string) Outcome {
	var codes []string
	for _, field := range fields[1:] {
		if strings.TrimSpace(field) == "" {
			continue
		}
		if code, ok := normalize.CompositeValue(field); ok {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return skipped(SkipNoContent)
	}
	b.claim.Diagnoses = codes
	b.touched = true
	return applied()
}

// applySV1 appends a service line. Fields: 1 procedure code (composite
// aware), 2 charge amount, 4 units.
func (b *claimBuilder) applySV1(fields []string) Outcome {
	if len(fields) < 3 {
		return skipped(SkipShortSegment)
	}
	proc, ok := normalize.CompositeValue(fields[1])
	if !ok {
		proc = strings.TrimSpace(fields[1])
	}
	svc := &model.Service{
		ProcedureCode: proc,
		Amount:        b.parseAmount(fields[2], "service_charge"),
		Units:         fieldAt(fields, 4),
	}
	b.claim.Services = append(b.claim.Services, svc)
	b.touched = true
	return applied()
}

// applyDTP stores the service date for qualifier 472. The qualifier is
// compared raw, exactly as it appears in the field; other qualifiers are a
// counted no-op.
func (b *claimBuilder) applyDTP(fields []string) Outcome {
	if len(fields) < 4 {
		return skipped(SkipShortSegment)
	}
	if fields[1] != QualifierServiceDate {
		return skipped(SkipUnhandledQualifier)
	}
	date := normalize.ConvertDate(fields[3])
	b.claim.ServiceDate = &date
	b.touched = true
	return applied()
}

// parseAmount distinguishes blank (null, quiet) from non-numeric (null plus
// a warning). The segment is still applied either way.
func (b *claimBuilder) parseAmount(field, what string) *float64 {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	v := normalize.ParseAmount(field)
	if v == nil {
		b.log.Warn().Str("field", what).Str("value", field).Msg("non-numeric amount, storing null")
		b.warn()
	}
	return v
}

// rootAddress returns the claim-level address, creating it on first use.
func (b *claimBuilder) rootAddress() *model.Address {
	if b.claim.Address == nil {
		b.claim.Address = &model.Address{}
	}
	return b.claim.Address
}

// facilityAddress returns the facility address, creating it on first use.
// Only called while routing is routeFacility, so the facility exists.
func (b *claimBuilder) facilityAddress() *model.Address {
	if b.claim.ServiceFacility.Address == nil {
		b.claim.ServiceFacility.Address = &model.Address{}
	}
	return b.claim.ServiceFacility.Address
}

// fieldAt returns the trimmed field at index i, nil when the field is
// missing or blank.
func fieldAt(fields []string, i int) *string {
	if i >= len(fields) {
		return nil
	}
	return normalize.TrimOrNil(fields[i])
}
