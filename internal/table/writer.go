package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Writer writes one CSV table in UTF-8. Fields containing the delimiter,
// quotes or line breaks are quoted by encoding/csv.
type Writer struct {
	cw   *csv.Writer
	rows int
}

// NewWriter returns a Writer that writes to w using the dialect's delimiter
// and line ending.
func NewWriter(w io.Writer, d Dialect) *Writer {
	cw := csv.NewWriter(w)
	if d.Comma != 0 {
		cw.Comma = d.Comma
	}
	cw.UseCRLF = d.CRLF
	return &Writer{cw: cw}
}

// Write writes one record.
func (w *Writer) Write(record []string) error {
	if err := w.cw.Write(record); err != nil {
		return fmt.Errorf("write row %d: %w", w.rows, err)
	}
	w.rows++
	return nil
}

// Flush flushes buffered output and reports any write error seen so far.
func (w *Writer) Flush() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Rows returns the number of records written, header included.
func (w *Writer) Rows() int { return w.rows }
