package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Verify opens a written export, checks the schema carries the columns
// downstream readers key on, and returns the row count.
func Verify(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return 0, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ServiceLineRow](pf)
	defer reader.Close()

	if err := validateSchema(reader.Schema()); err != nil {
		return 0, err
	}
	return reader.NumRows(), nil
}

// validateSchema checks that the schema contains the required columns.
func validateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	required := []string{"source_file", "claim_seq", "procedure_code", "service_amount"}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}
	return nil
}
