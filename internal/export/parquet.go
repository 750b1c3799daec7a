package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/ediclaims/internal/model"
)

const parquetFlushInterval = 100_000

// Writer handles writing service-line rows to a Parquet file.
type Writer struct {
	file       *os.File
	writer     *parquet.GenericWriter[ServiceLineRow]
	count      int
	sinceFlush int
}

// NewWriter creates a new Parquet file writer.
func NewWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[ServiceLineRow](file,
		parquet.Compression(&parquet.Snappy),
	)

	return &Writer{file: file, writer: writer}, nil
}

// Write appends rows to the Parquet file.
func (w *Writer) Write(rows []ServiceLineRow) error {
	if len(rows) == 0 {
		return nil
	}

	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet records: %w", err)
	}
	w.count += len(rows)
	w.sinceFlush += len(rows)

	// Flush row groups periodically to bound memory usage
	if w.sinceFlush >= parquetFlushInterval {
		if err := w.writer.Flush(); err != nil {
			return fmt.Errorf("flush parquet row group: %w", err)
		}
		w.sinceFlush = 0
	}

	return nil
}

// Close flushes and closes the Parquet writer.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// WriteFile flattens the document and writes it to path, returning the
// number of rows produced.
func WriteFile(path string, doc *model.Document, sourceFile string) (int, error) {
	rows := Flatten(doc, sourceFile)

	w, err := NewWriter(path)
	if err != nil {
		return 0, err
	}
	if err := w.Write(rows); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.Count(), nil
}
