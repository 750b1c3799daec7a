package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/ediclaims/internal/model"
)

func strp(s string) *string { return &s }

func fp(v float64) *float64 { return &v }

// testDocument builds a two-claim document: one fully populated claim with
// two service lines, and one bare claim with none.
func testDocument() *model.Document {
	doc := model.NewDocument()
	doc.Claims = append(doc.Claims, &model.Claim{
		ClaimHeader: &model.ClaimHeader{
			ClaimNumber: strp("12345"),
			Amount:      fp(100.0),
			ClaimType:   strp("24:B:1"),
		},
		Insured:      &model.Party{LastName: strp("DOE"), FirstName: strp("JOHN"), ID: strp("12345")},
		Patient:      &model.Party{LastName: strp("DOE"), FirstName: strp("JANE")},
		Demographics: &model.Demographics{DateOfBirth: strp("1980-01-01"), Gender: strp("M")},
		ServiceFacility: &model.Facility{
			Name: strp("GENERAL HOSPITAL"),
			ID:   strp("1234567890"),
		},
		Diagnoses: []string{"E119", "I10"},
		Services: []*model.Service{
			{ProcedureCode: "99213", Amount: fp(125.00), Units: strp("1")},
			{ProcedureCode: "85025", Amount: nil},
		},
		ServiceDate: strp("2023-01-15"),
	})
	doc.Claims = append(doc.Claims, &model.Claim{
		ClaimHeader: &model.ClaimHeader{ClaimNumber: strp("67890")},
	})
	return doc
}

func TestFlatten(t *testing.T) {
	rows := Flatten(testDocument(), "claims.edi")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.SourceFile != "claims.edi" {
		t.Errorf("source_file: got %q", first.SourceFile)
	}
	if first.ClaimSeq != 0 {
		t.Errorf("claim_seq: got %d", first.ClaimSeq)
	}
	if first.ClaimNumber == nil || *first.ClaimNumber != "12345" {
		t.Errorf("claim_number: got %v", first.ClaimNumber)
	}
	if first.ServiceSeq == nil || *first.ServiceSeq != 0 {
		t.Errorf("service_seq: got %v", first.ServiceSeq)
	}
	if first.ProcedureCode == nil || *first.ProcedureCode != "99213" {
		t.Errorf("procedure_code: got %v", first.ProcedureCode)
	}
	if first.ServiceAmount == nil || *first.ServiceAmount != 125.00 {
		t.Errorf("service_amount: got %v", first.ServiceAmount)
	}
	if len(first.DiagnosisCodes) != 2 || first.DiagnosisCodes[0] != "E119" {
		t.Errorf("diagnosis_codes: got %v", first.DiagnosisCodes)
	}

	second := rows[1]
	if second.ServiceSeq == nil || *second.ServiceSeq != 1 {
		t.Errorf("second service_seq: got %v", second.ServiceSeq)
	}
	if second.ServiceAmount != nil {
		t.Errorf("second service_amount should be nil, got %v", *second.ServiceAmount)
	}
	if second.ClaimNumber == nil || *second.ClaimNumber != "12345" {
		t.Error("claim context not replicated onto second service line")
	}

	// The bare claim still exports, with service fields absent.
	bare := rows[2]
	if bare.ClaimSeq != 1 {
		t.Errorf("bare claim_seq: got %d", bare.ClaimSeq)
	}
	if bare.ClaimNumber == nil || *bare.ClaimNumber != "67890" {
		t.Errorf("bare claim_number: got %v", bare.ClaimNumber)
	}
	if bare.ServiceSeq != nil || bare.ProcedureCode != nil || bare.ServiceAmount != nil {
		t.Error("bare claim should have no service fields")
	}
}

func TestFlatten_EmptyDocument(t *testing.T) {
	if rows := Flatten(model.NewDocument(), "x.edi"); len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.parquet")

	n, err := WriteFile(path, testDocument(), "claims.edi")
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if n != 3 {
		t.Errorf("wrote %d rows, want 3", n)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if fileInfo.Size() == 0 {
		t.Error("parquet file is empty")
	}

	records, err := parquet.ReadFile[ServiceLineRow](path)
	if err != nil {
		t.Fatalf("read parquet file: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[0].ProcedureCode == nil || *records[0].ProcedureCode != "99213" {
		t.Errorf("record 0 procedure_code: got %v", records[0].ProcedureCode)
	}
	if records[0].ClaimAmount == nil || *records[0].ClaimAmount != 100.0 {
		t.Errorf("record 0 claim_amount: got %v", records[0].ClaimAmount)
	}
	if records[0].Gender == nil || *records[0].Gender != "M" {
		t.Errorf("record 0 gender: got %v", records[0].Gender)
	}
	if len(records[0].DiagnosisCodes) != 2 || records[0].DiagnosisCodes[1] != "I10" {
		t.Errorf("record 0 diagnosis_codes: got %v", records[0].DiagnosisCodes)
	}
	if records[1].ServiceAmount != nil {
		t.Errorf("record 1 service_amount should round-trip as nil, got %v", *records[1].ServiceAmount)
	}
	if records[2].ProcedureCode != nil {
		t.Errorf("record 2 procedure_code should be nil, got %v", *records[2].ProcedureCode)
	}
	if records[2].FacilityName != nil {
		t.Error("record 2 facility_name should be nil")
	}
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.parquet")
	if _, err := WriteFile(path, testDocument(), "claims.edi"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	n, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if n != 3 {
		t.Errorf("verified %d rows, want 3", n)
	}
}

func TestVerify_NotParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.parquet")
	if err := os.WriteFile(path, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(path); err == nil {
		t.Error("expected error for non-parquet input")
	}
}
