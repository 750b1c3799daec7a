// Package export flattens parsed claim documents into Parquet service-line
// rows for downstream analytics.
package export

import (
	"github.com/gyeh/ediclaims/internal/model"
)

// ServiceLineRow is one Parquet output row: a service line joined with its
// claim context. Claims without service lines still produce one row so no
// claim disappears from the export.
type ServiceLineRow struct {
	SourceFile  string   `parquet:"source_file"`
	ClaimSeq    int32    `parquet:"claim_seq"`
	ClaimNumber *string  `parquet:"claim_number,optional"`
	ClaimAmount *float64 `parquet:"claim_amount,optional"`
	ClaimType   *string  `parquet:"claim_type,optional"`
	ServiceDate *string  `parquet:"service_date,optional"`

	InsuredLastName  *string `parquet:"insured_last_name,optional"`
	InsuredID        *string `parquet:"insured_id,optional"`
	PatientLastName  *string `parquet:"patient_last_name,optional"`
	PatientFirstName *string `parquet:"patient_first_name,optional"`
	DateOfBirth      *string `parquet:"date_of_birth,optional"`
	Gender           *string `parquet:"gender,optional"`

	FacilityName *string `parquet:"facility_name,optional"`
	FacilityID   *string `parquet:"facility_id,optional"`

	DiagnosisCodes []string `parquet:"diagnosis_codes,list"`

	ServiceSeq    *int32   `parquet:"service_seq,optional"`
	ProcedureCode *string  `parquet:"procedure_code,optional"`
	ServiceAmount *float64 `parquet:"service_amount,optional"`
	ServiceUnits  *string  `parquet:"service_units,optional"`
}

// Flatten explodes a document into service-line rows, one per SV1 line and
// one bare row for each claim that has none.
func Flatten(doc *model.Document, sourceFile string) []ServiceLineRow {
	var rows []ServiceLineRow
	for seq, claim := range doc.Claims {
		base := claimRow(claim, sourceFile, seq)
		if len(claim.Services) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, svc := range claim.Services {
			row := base
			svcSeq := int32(i)
			code := svc.ProcedureCode
			row.ServiceSeq = &svcSeq
			row.ProcedureCode = &code
			row.ServiceAmount = svc.Amount
			row.ServiceUnits = svc.Units
			rows = append(rows, row)
		}
	}
	return rows
}

func claimRow(c *model.Claim, sourceFile string, seq int) ServiceLineRow {
	row := ServiceLineRow{
		SourceFile:     sourceFile,
		ClaimSeq:       int32(seq),
		ServiceDate:    c.ServiceDate,
		DiagnosisCodes: c.Diagnoses,
	}
	if c.ClaimHeader != nil {
		row.ClaimNumber = c.ClaimHeader.ClaimNumber
		row.ClaimAmount = c.ClaimHeader.Amount
		row.ClaimType = c.ClaimHeader.ClaimType
	}
	if c.Insured != nil {
		row.InsuredLastName = c.Insured.LastName
		row.InsuredID = c.Insured.ID
	}
	if c.Patient != nil {
		row.PatientLastName = c.Patient.LastName
		row.PatientFirstName = c.Patient.FirstName
	}
	if c.Demographics != nil {
		row.DateOfBirth = c.Demographics.DateOfBirth
		row.Gender = c.Demographics.Gender
	}
	if c.ServiceFacility != nil {
		row.FacilityName = c.ServiceFacility.Name
		row.FacilityID = c.ServiceFacility.ID
	}
	return row
}
