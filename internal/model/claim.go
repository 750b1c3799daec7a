package model

// Document is the top-level parse output: every claim found in the input,
// in encounter order. Claims is always non-nil so an empty parse still
// marshals as {"claims": []}.
type Document struct {
	Claims []*Claim `json:"claims"`
}

// NewDocument returns a Document with an empty, non-nil claim list.
func NewDocument() *Document {
	return &Document{Claims: []*Claim{}}
}

// ClaimHeader carries the three CLM-derived fields. It is embedded as a
// pointer so a claim assembled without any CLM segment omits all three keys,
// while an applied CLM with blank fields emits explicit nulls.
type ClaimHeader struct {
	ClaimNumber *string  `json:"claim_number"`
	Amount      *float64 `json:"amount"`
	ClaimType   *string  `json:"claim_type"`
}

// Party is a person attached to a claim by an NM1 segment. All four keys
// are always present once the segment applied; blank fields are null.
type Party struct {
	LastName   *string `json:"last_name"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	ID         *string `json:"id_number"`
}

// AddressLines is the street group contributed by N3.
type AddressLines struct {
	Line1 *string `json:"address_line_1"`
	Line2 *string `json:"address_line_2"`
}

// AddressLocality is the city group contributed by N4. Values pass through
// exactly as they appear in the segment; blank fields stay empty strings
// rather than turning into nulls.
type AddressLocality struct {
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Address combines the two independently-set groups. Either group may be
// absent when its segment never applied.
type Address struct {
	*AddressLines
	*AddressLocality
}

// Facility is the service facility announced by NM1*77. While a facility is
// set, address segments route here instead of to the claim.
type Facility struct {
	Name    *string  `json:"name"`
	ID      *string  `json:"id"`
	Address *Address `json:"address,omitempty"`
}

// Demographics is the DMG payload. A repeat DMG replaces it wholesale.
type Demographics struct {
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

// Service is one SV1 service line.
type Service struct {
	ProcedureCode string   `json:"procedure_code"`
	Amount        *float64 `json:"amount"`
	Units         *string  `json:"units"`
}

// Claim is one accumulated claim. A key is absent when its segment never
// appeared and null when the segment appeared with a blank value.
type Claim struct {
	*ClaimHeader
	Insured           *Party        `json:"insured,omitempty"`
	Patient           *Party        `json:"patient,omitempty"`
	RenderingProvider *Party        `json:"rendering_provider,omitempty"`
	ReferringProvider *Party        `json:"referring_provider,omitempty"`
	ServiceFacility   *Facility     `json:"service_facility,omitempty"`
	Address           *Address      `json:"address,omitempty"`
	Demographics      *Demographics `json:"demographics,omitempty"`
	Diagnoses         []string      `json:"diagnoses,omitempty"`
	Services          []*Service    `json:"services,omitempty"`
	ServiceDate       *string       `json:"service_date,omitempty"`
}
