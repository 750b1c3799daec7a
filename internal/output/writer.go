package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gyeh/ediclaims/internal/model"
)

// WriteDocument marshals a claims document with 2-space indentation and
// writes it to path. An empty path or "-" prints to stdout, which stays
// reserved for the document itself; diagnostics go to stderr.
func WriteDocument(path string, doc *model.Document) error {
	if doc.Claims == nil {
		doc.Claims = []*model.Claim{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		fmt.Fprintln(os.Stdout)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
