// Package tabdata reads delimited data sources and builds the per-row
// variable maps that drive document generation.
package tabdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyDataSource is returned by Read when header mode is requested
// but the data source contains no rows at all.
var ErrEmptyDataSource = errors.New("data source contains no data")

// Row is one record of the data source, cells in column order.
type Row []string

// Table is the parsed data source. Header is nil in index mode until
// the first descriptor is built, at which point a synthetic header
// ("0", "1", ...) sized from the first data row is filled in.
type Table struct {
	Header Row
	Rows   []Row
}

// Read parses the CSV resource at path. When header is true the first
// record becomes the table header; quoted fields keep embedded
// delimiters and quotes intact.
func Read(path string, header bool) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	defer f.Close()

	return parse(f, header)
}

// ParseString parses CSV text that is already in memory, e.g. a
// request body.
func ParseString(s string, header bool) (*Table, error) {
	return parse(strings.NewReader(s), header)
}

func parse(r io.Reader, header bool) (*Table, error) {
	reader := csv.NewReader(r)
	// Rows are zipped with the header positionally; ragged input is
	// handled by the descriptor builder, not rejected here.
	reader.FieldsPerRecord = -1

	table := &Table{}
	if header {
		hdr, err := reader.Read()
		if err == io.EOF {
			return nil, ErrEmptyDataSource
		}
		if err != nil {
			return nil, err
		}
		table.Header = hdr
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// Descriptor maps a variable name to its value for a single row.
type Descriptor map[string]string

// Describe builds the substitution context for row. In name mode the
// table header supplies the keys; in index mode a synthetic header
// "0", "1", ... is derived from the first data row and reused for
// every row. Extra cells beyond the header are dropped, missing cells
// leave their key unset.
func (t *Table) Describe(row Row) Descriptor {
	if t.Header == nil {
		t.synthesizeHeader()
	}
	desc := make(Descriptor, len(t.Header))
	for i, name := range t.Header {
		if i >= len(row) {
			break
		}
		desc[name] = row[i]
	}
	return desc
}

func (t *Table) synthesizeHeader() {
	if len(t.Rows) == 0 {
		return
	}
	hdr := make(Row, len(t.Rows[0]))
	for i := range hdr {
		hdr[i] = strconv.Itoa(i)
	}
	t.Header = hdr
}
