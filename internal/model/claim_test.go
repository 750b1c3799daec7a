package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func str(s string) *string { return &s }

func num(v float64) *float64 { return &v }

func TestDocument_EmptyMarshalsToEmptyArray(t *testing.T) {
	data, err := json.Marshal(NewDocument())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"claims":[]}` {
		t.Errorf("empty document = %s", data)
	}
}

func TestClaim_HeaderAbsentWithoutCLM(t *testing.T) {
	c := &Claim{Insured: &Party{LastName: str("DOE")}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"claim_number", "amount", "claim_type"} {
		if strings.Contains(string(data), key) {
			t.Errorf("claim without header emitted %q: %s", key, data)
		}
	}
	if !strings.Contains(string(data), `"insured"`) {
		t.Errorf("insured missing: %s", data)
	}
}

func TestClaim_HeaderNullsWhenBlank(t *testing.T) {
	c := &Claim{ClaimHeader: &ClaimHeader{}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"claim_number":null,"amount":null,"claim_type":null}`
	if string(data) != want {
		t.Errorf("blank header = %s, want %s", data, want)
	}
}

func TestClaim_CanonicalShape(t *testing.T) {
	c := &Claim{
		ClaimHeader: &ClaimHeader{
			ClaimNumber: str("12345"),
			Amount:      num(100.0),
			ClaimType:   str("24:B:1"),
		},
		Insured: &Party{
			LastName:  str("DOE"),
			FirstName: str("JOHN"),
			ID:        str("12345"),
		},
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"claim_number":"12345","amount":100,"claim_type":"24:B:1",` +
		`"insured":{"last_name":"DOE","first_name":"JOHN","middle_name":null,"id_number":"12345"}}`
	if string(data) != want {
		t.Errorf("canonical claim =\n%s\nwant\n%s", data, want)
	}
}

func TestAddress_GroupsIndependent(t *testing.T) {
	lines := &Address{AddressLines: &AddressLines{Line1: str("123 MAIN ST")}}
	data, _ := json.Marshal(lines)
	if string(data) != `{"address_line_1":"123 MAIN ST","address_line_2":null}` {
		t.Errorf("lines-only address = %s", data)
	}

	locality := &Address{AddressLocality: &AddressLocality{City: "SOMEWHERE"}}
	data, _ = json.Marshal(locality)
	if string(data) != `{"city":"SOMEWHERE","state":"","zip":""}` {
		t.Errorf("locality-only address = %s", data)
	}

	both := &Address{
		AddressLines:    &AddressLines{Line1: str("123 MAIN ST"), Line2: str("APT 4")},
		AddressLocality: &AddressLocality{City: "SOMEWHERE", State: "CA", Zip: "90210"},
	}
	data, _ = json.Marshal(both)
	want := `{"address_line_1":"123 MAIN ST","address_line_2":"APT 4","city":"SOMEWHERE","state":"CA","zip":"90210"}`
	if string(data) != want {
		t.Errorf("full address = %s, want %s", data, want)
	}
}

func TestClaim_RoundTripStable(t *testing.T) {
	c := &Claim{
		ClaimHeader: &ClaimHeader{ClaimNumber: str("99"), Amount: num(12.5), ClaimType: str("11")},
		Patient:     &Party{LastName: str("SMITH"), FirstName: str("JANE"), MiddleName: str("Q"), ID: str("777")},
		ServiceFacility: &Facility{
			Name: str("CLINIC"),
			ID:   str("F1"),
			Address: &Address{
				AddressLines: &AddressLines{Line1: str("1 WAY")},
			},
		},
		Demographics: &Demographics{DateOfBirth: str("1980-01-01"), Gender: str("F")},
		Diagnoses:    []string{"Z23"},
		Services:     []*Service{{ProcedureCode: "99213", Amount: num(88), Units: str("1")}},
		ServiceDate:  str("2023-01-15"),
	}
	doc := &Document{Claims: []*Claim{c}}

	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var back Document
	if err := json.Unmarshal(first, &back); err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(&back)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip not stable:\n%s\n%s", first, second)
	}
}
