package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyeh/ediclaims/internal/model"
)

func TestWriteDocument_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.json")

	num := "12345"
	doc := &model.Document{Claims: []*model.Claim{
		{ClaimHeader: &model.ClaimHeader{ClaimNumber: &num}},
	}}
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "{\n  \"claims\": [\n") {
		t.Errorf("output not indented with two spaces:\n%s", got)
	}
	if !strings.Contains(got, `"claim_number": "12345"`) {
		t.Errorf("claim number missing:\n%s", got)
	}
}

func TestWriteDocument_NilClaimsBecomesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")

	if err := WriteDocument(path, &model.Document{}); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"claims\": []\n}"
	if string(data) != want {
		t.Errorf("empty document = %q, want %q", data, want)
	}
}

func TestWriteDocument_BadPath(t *testing.T) {
	err := WriteDocument(filepath.Join(t.TempDir(), "no", "such", "dir", "out.json"), model.NewDocument())
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
