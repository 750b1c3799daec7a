package load

import (
	"github.com/google/uuid"

	"github.com/gyeh/ediclaims/internal/model"
	"github.com/gyeh/ediclaims/internal/normalize"
)

// claimInsertArgs produces the positional args for the insert_claim query,
// in column order. Absent JSON groups map to NULL columns; present-but-empty
// locality strings stay empty.
func claimInsertArgs(c *model.Claim, claimFileID int64, batchID uuid.UUID, seq int) []any {
	var number, claimType *string
	var amount *float64
	if c.ClaimHeader != nil {
		number = c.ClaimHeader.ClaimNumber
		amount = c.ClaimHeader.Amount
		claimType = c.ClaimHeader.ClaimType
	}

	var dob, gender *string
	if c.Demographics != nil {
		dob = c.Demographics.DateOfBirth
		gender = c.Demographics.Gender
	}

	addr := addressCols(c.Address)

	var facName, facID *string
	var facAddr [5]*string
	if c.ServiceFacility != nil {
		facName = c.ServiceFacility.Name
		facID = c.ServiceFacility.ID
		facAddr = addressCols(c.ServiceFacility.Address)
	}

	return []any{
		claimFileID,
		batchID,
		seq,
		number,
		normalize.DollarsToCents(amount),
		claimType,
		c.ServiceDate,
		dob,
		gender,
		addr[0], addr[1], addr[2], addr[3], addr[4],
		facName,
		facID,
		facAddr[0], facAddr[1], facAddr[2], facAddr[3], facAddr[4],
	}
}

// addressCols flattens an Address into line1, line2, city, state, zip.
func addressCols(a *model.Address) [5]*string {
	var cols [5]*string
	if a == nil {
		return cols
	}
	if a.AddressLines != nil {
		cols[0] = a.AddressLines.Line1
		cols[1] = a.AddressLines.Line2
	}
	if a.AddressLocality != nil {
		cols[2] = &a.AddressLocality.City
		cols[3] = &a.AddressLocality.State
		cols[4] = &a.AddressLocality.Zip
	}
	return cols
}

func partyColumns() []string {
	return []string{"claim_id", "role", "last_name", "first_name", "middle_name", "identifier"}
}

func partyRowsFor(claimID int64, c *model.Claim) [][]any {
	attached := []struct {
		role  string
		party *model.Party
	}{
		{"insured", c.Insured},
		{"patient", c.Patient},
		{"rendering_provider", c.RenderingProvider},
		{"referring_provider", c.ReferringProvider},
	}

	var rows [][]any
	for _, a := range attached {
		if a.party == nil {
			continue
		}
		rows = append(rows, []any{claimID, a.role, a.party.LastName, a.party.FirstName, a.party.MiddleName, a.party.ID})
	}
	return rows
}

func diagnosisColumns() []string {
	return []string{"claim_id", "seq", "code"}
}

func diagnosisRowsFor(claimID int64, c *model.Claim) [][]any {
	var rows [][]any
	for i, code := range c.Diagnoses {
		rows = append(rows, []any{claimID, i, code})
	}
	return rows
}

func serviceColumns() []string {
	return []string{"claim_id", "seq", "procedure_code", "amount_cents", "units"}
}

func serviceRowsFor(claimID int64, c *model.Claim) [][]any {
	var rows [][]any
	for i, svc := range c.Services {
		rows = append(rows, []any{claimID, i, svc.ProcedureCode, normalize.DollarsToCents(svc.Amount), svc.Units})
	}
	return rows
}
