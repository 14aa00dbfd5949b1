package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// ErrFieldCount is returned by Reader.Read when a data row has more fields
// than the header. Shorter rows are padded instead.
var ErrFieldCount = errors.New("row has more fields than header")

// Dialect configures both sides of a table. All fields are optional; the
// zero value reads and writes plain comma-separated UTF-8 with LF endings.
type Dialect struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// LazyQuotes tolerates bare quotes inside fields when reading.
	LazyQuotes bool

	// CRLF terminates written lines with \r\n.
	CRLF bool

	// Encoding names the input charset (WHATWG label, e.g. "windows-1252",
	// "latin1"). Empty or "utf-8" reads input as UTF-8. Output is always
	// UTF-8.
	Encoding string
}

// LookupEncoding resolves a charset label. An empty label means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Reader reads one CSV table. It is not safe for concurrent use.
type Reader struct {
	cr     *csv.Reader
	src    *lineCounter
	header *Header
	rows   int

	// endLine is the physical line the last record ended on.
	endLine int
}

// NewReader returns a Reader over r. Input in a non-UTF-8 charset is decoded
// on the fly.
func NewReader(r io.Reader, d Dialect) (*Reader, error) {
	enc, err := LookupEncoding(d.Encoding)
	if err != nil {
		return nil, err
	}
	if enc != unicode.UTF8 {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	src := &lineCounter{r: r}
	cr := csv.NewReader(src)
	if d.Comma != 0 {
		cr.Comma = d.Comma
	}
	cr.LazyQuotes = d.LazyQuotes
	// Width is checked against the header after each read.
	cr.FieldsPerRecord = -1
	return &Reader{cr: cr, src: src}, nil
}

// ReadHeader reads the first record as the header. It returns io.EOF for an
// empty input.
func (r *Reader) ReadHeader() (*Header, error) {
	rec, err := r.next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	r.header = NewHeader(rec)
	return r.header, nil
}

// Read returns the next data row aligned to the header. Short rows are padded
// with empty values. It returns io.EOF at the end of input.
func (r *Reader) Read() (Row, error) {
	if r.header == nil {
		if _, err := r.ReadHeader(); err != nil {
			return Row{}, err
		}
	}
	rec, err := r.next()
	if err != nil {
		if err == io.EOF {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("read row %d: %w", r.rows, err)
	}
	width := r.header.Len()
	if len(rec) > width {
		return Row{}, fmt.Errorf("row %d: %w (header %d, row %d)", r.rows, ErrFieldCount, width, len(rec))
	}
	for len(rec) < width {
		rec = append(rec, "")
	}
	return Row{Header: r.header, Values: rec}, nil
}

// ReadAll returns every remaining record as raw cells, header included when it
// has not been read yet. Rows keep their own width, and each blank physical
// line comes back as a zero-cell record in its position.
func (r *Reader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		prevEnd := r.endLine
		rec, err := r.next()
		if err == io.EOF {
			for n := r.src.lines() - prevEnd; n > 0; n-- {
				out = append(out, []string{})
			}
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read row %d: %w", r.rows, err)
		}
		start, _ := r.cr.FieldPos(0)
		for n := start - prevEnd - 1; n > 0; n-- {
			out = append(out, []string{})
		}
		out = append(out, rec)
	}
}

// Header returns the header read so far, or nil.
func (r *Reader) Header() *Header { return r.header }

// Rows returns the number of records consumed, header included.
func (r *Reader) Rows() int { return r.rows }

func (r *Reader) next() ([]string, error) {
	rec, err := r.cr.Read()
	if err != nil {
		return nil, err
	}
	last := len(rec) - 1
	line, _ := r.cr.FieldPos(last)
	// Quoted fields may span lines; csv folds their CRLFs to LF.
	r.endLine = line + strings.Count(rec[last], "\n")

	if r.rows == 0 {
		rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
	}
	r.rows++
	return rec, nil
}

// lineCounter counts the physical lines that pass through it. encoding/csv
// drops blank lines without reporting them, so ReadAll recovers them from
// the gaps between record positions and this total.
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
	seen     bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		c.seen = true
	}
	return n, err
}

// lines returns the number of lines read, counting an unterminated last line.
func (c *lineCounter) lines() int {
	if c.seen && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}
