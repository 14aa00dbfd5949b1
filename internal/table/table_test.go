package table

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestHeader_Lookup(t *testing.T) {
	t.Parallel()

	h := NewHeader([]string{"ID", "DateTime", "Value", "ID"})
	if got := h.Len(); got != 4 {
		t.Fatalf("Len = %d, want 4", got)
	}
	if got := h.Index("Value"); got != 2 {
		t.Fatalf("Index(Value) = %d, want 2", got)
	}
	if got := h.Index("ID"); got != 0 {
		t.Fatalf("Index(ID) = %d, want first position 0", got)
	}
	if h.Has("missing") {
		t.Fatalf("Has(missing) = true")
	}

	names := h.Names()
	names[0] = "mutated"
	if h.Names()[0] != "ID" {
		t.Fatalf("Names must return a copy")
	}
}

func TestRow_GetSetBlank(t *testing.T) {
	t.Parallel()

	h := NewHeader([]string{"a", "b"})
	r := Row{Header: h, Values: []string{" ", "x"}}

	if v, ok := r.Get("b"); !ok || v != "x" {
		t.Fatalf("Get(b) = %q,%v", v, ok)
	}
	if _, ok := r.Get("c"); ok {
		t.Fatalf("Get(c) should report missing column")
	}
	if !r.Set("b", "\t") {
		t.Fatalf("Set(b) = false")
	}
	if r.Set("c", "y") {
		t.Fatalf("Set(c) = true for missing column")
	}
	if !r.AllBlank() {
		t.Fatalf("AllBlank = false for %q", r.Values)
	}
	if !Blank(nil) {
		t.Fatalf("Blank(nil) = false")
	}
}

func TestReader_HeaderAndRows(t *testing.T) {
	t.Parallel()

	in := "\uFEFFID,Name,Note\n1,Alice,\"has, comma\"\n2,Bob\n"
	r, err := NewReader(strings.NewReader(in), Dialect{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	h, err := r.ReadHeader()
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if want := []string{"ID", "Name", "Note"}; !reflect.DeepEqual(h.Names(), want) {
		t.Fatalf("header = %#v, want %#v (BOM stripped)", h.Names(), want)
	}

	var got [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got = append(got, row.Values)
	}
	want := [][]string{
		{"1", "Alice", "has, comma"},
		{"2", "Bob", ""}, // padded
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %#v, want %#v", got, want)
	}
	if r.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", r.Rows())
	}
}

func TestReader_WideRowIsError(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a,b\n1,2,3\n"), Dialect{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, err = r.Read()
	if !errors.Is(err, ErrFieldCount) {
		t.Fatalf("Read err = %v, want ErrFieldCount", err)
	}
}

func TestReader_EmptyInput(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader(""), Dialect{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.ReadHeader(); err != io.EOF {
		t.Fatalf("ReadHeader err = %v, want io.EOF", err)
	}
}

func TestReader_ReadAllKeepsWidths(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("Cat,d1,d2\nA,1\nB,1,2\n"), Dialect{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := [][]string{{"Cat", "d1", "d2"}, {"A", "1"}, {"B", "1", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadAll = %#v, want %#v", got, want)
	}
}

func TestReader_ReadAllKeepsBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "trailing_crlf",
			input: "Cat,d1\r\n\r\n",
			want:  [][]string{{"Cat", "d1"}, {}},
		},
		{
			name:  "between_and_after",
			input: "Cat,d1\n\nA,1\n\n\n",
			want:  [][]string{{"Cat", "d1"}, {}, {"A", "1"}, {}, {}},
		},
		{
			name:  "no_final_newline",
			input: "Cat,d1\nA,1",
			want:  [][]string{{"Cat", "d1"}, {"A", "1"}},
		},
		{
			name:  "quoted_field_spans_lines",
			input: "Cat,d1\n\"A\r\nB\",1\n\nC,2\n",
			want:  [][]string{{"Cat", "d1"}, {"A\nB", "1"}, {}, {"C", "2"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader(tt.input), Dialect{})
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			got, err := r.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ReadAll = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReader_DecodesCharset(t *testing.T) {
	t.Parallel()

	// "Café" in windows-1252.
	in := []byte("Name\nCaf\xe9\n")
	r, err := NewReader(bytes.NewReader(in), Dialect{Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if row.Values[0] != "Café" {
		t.Fatalf("decoded = %q, want %q", row.Values[0], "Café")
	}
}

func TestReader_UnknownCharset(t *testing.T) {
	t.Parallel()

	if _, err := NewReader(strings.NewReader(""), Dialect{Encoding: "no-such-charset"}); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestReader_Semicolon(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a;b\n1,5;2\n"), Dialect{Comma: ';'})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"1,5", "2"}; !reflect.DeepEqual(row.Values, want) {
		t.Fatalf("row = %#v, want %#v", row.Values, want)
	}
}

func TestWriter_QuotingAndLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		crlf bool
		want string
	}{
		{name: "lf", crlf: false, want: "a,\"b,c\",\"say \"\"hi\"\"\"\n"},
		{name: "crlf", crlf: true, want: "a,\"b,c\",\"say \"\"hi\"\"\"\r\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewWriter(&buf, Dialect{CRLF: tt.crlf})
			if err := w.Write([]string{"a", "b,c", `say "hi"`}); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
			if w.Rows() != 1 {
				t.Fatalf("Rows = %d, want 1", w.Rows())
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_FlushSurfacesError(t *testing.T) {
	t.Parallel()

	w := NewWriter(failingWriter{}, Dialect{})
	_ = w.Write([]string{"x"})
	if err := w.Flush(); err == nil {
		t.Fatalf("Flush: expected error from underlying writer")
	}
}
