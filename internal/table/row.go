// Package table is the tabular reader/writer used by the cleaning pipeline.
// It wraps encoding/csv with the handful of behaviors the lab exports need:
// a header-aware row type, BOM stripping, optional charset decoding of the
// input and a consistent output dialect.
package table

import "strings"

// Header is the ordered column list of one table. It carries the name→index
// lookup so rows can be addressed by column name while keeping their order.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a Header from column names. When a name repeats, lookups
// resolve to its first position.
func NewHeader(names []string) *Header {
	h := &Header{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range h.names {
		if _, dup := h.index[n]; !dup {
			h.index[n] = i
		}
	}
	return h
}

// Names returns a copy of the column names in order.
func (h *Header) Names() []string { return append([]string(nil), h.names...) }

// Len returns the number of columns.
func (h *Header) Len() int { return len(h.names) }

// Index returns the position of column name, or -1.
func (h *Header) Index(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the header contains column name.
func (h *Header) Has(name string) bool { return h.Index(name) >= 0 }

// Row is one data row of a flat table. Values is aligned to Header.
type Row struct {
	Header *Header
	Values []string
}

// Get returns the value of column name and whether the column exists.
func (r Row) Get(name string) (string, bool) {
	i := r.Header.Index(name)
	if i < 0 || i >= len(r.Values) {
		return "", false
	}
	return r.Values[i], true
}

// Set replaces the value of column name. It reports false when the column
// does not exist.
func (r Row) Set(name, v string) bool {
	i := r.Header.Index(name)
	if i < 0 || i >= len(r.Values) {
		return false
	}
	r.Values[i] = v
	return true
}

// AllBlank reports whether every value is empty or whitespace only.
func (r Row) AllBlank() bool { return Blank(r.Values) }

// Blank reports whether every cell is empty or whitespace only. A nil or
// empty slice is blank.
func Blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
