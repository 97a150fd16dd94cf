package tabdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		header   bool
		want     *Table
		wantErr  bool
		emptyErr bool
	}{{
		name:   `simple with header`,
		input:  "name,show\nAlice,yes\nBob,no\n",
		header: true,
		want: &Table{
			Header: Row{"name", "show"},
			Rows:   []Row{{"Alice", "yes"}, {"Bob", "no"}},
		},
	}, {
		name:   `quoted field keeps embedded delimiter`,
		input:  "name,desc\nWidget,\"A small, useful device\"\n",
		header: true,
		want: &Table{
			Header: Row{"name", "desc"},
			Rows:   []Row{{"Widget", "A small, useful device"}},
		},
	}, {
		name:   `quoted field keeps embedded quotes and newline`,
		input:  "name,desc\n\"Gadget\",\"Premium \"\"quality\"\"\nitem\"\n",
		header: true,
		want: &Table{
			Header: Row{"name", "desc"},
			Rows:   []Row{{"Gadget", "Premium \"quality\"\nitem"}},
		},
	}, {
		name:   `ragged rows are preserved`,
		input:  "a,b\n1\n2,3,4\n",
		header: true,
		want: &Table{
			Header: Row{"a", "b"},
			Rows:   []Row{{"1"}, {"2", "3", "4"}},
		},
	}, {
		name:   `no header mode keeps first row as data`,
		input:  "Alice,yes\n",
		header: false,
		want: &Table{
			Rows: []Row{{"Alice", "yes"}},
		},
	}, {
		name:     `empty source in header mode`,
		input:    "",
		header:   true,
		wantErr:  true,
		emptyErr: true,
	}, {
		name:   `header but zero data rows`,
		input:  "name,show\n",
		header: true,
		want: &Table{
			Header: Row{"name", "show"},
		},
	}}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input, tt.header)
			if tt.wantErr {
				require.Error(t, err)
				if tt.emptyErr {
					assert.ErrorIs(t, err, ErrEmptyDataSource)
				}
				return
			}
			require.NoError(t, err)
			if !cmp.Equal(tt.want, got) {
				t.Errorf("unexpected table: %s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nAlice\n"), 0644))

	table, err := Read(path, true)
	require.NoError(t, err)
	assert.Equal(t, Row{"name"}, table.Header)
	assert.Equal(t, []Row{{"Alice"}}, table.Rows)

	_, err = Read(filepath.Join(dir, "does-not-exist.csv"), true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestDescribeByName(t *testing.T) {
	table := &Table{
		Header: Row{"name", "show"},
		Rows:   []Row{{"Alice", "yes"}, {"Bob"}, {"Carol", "no", "extra"}},
	}

	assert.Equal(t, Descriptor{"name": "Alice", "show": "yes"}, table.Describe(table.Rows[0]))
	// Short row leaves the trailing key unset.
	assert.Equal(t, Descriptor{"name": "Bob"}, table.Describe(table.Rows[1]))
	// Extra cells beyond the header are dropped.
	assert.Equal(t, Descriptor{"name": "Carol", "show": "no"}, table.Describe(table.Rows[2]))
}

func TestDescribeByIndex(t *testing.T) {
	table := &Table{
		Rows: []Row{{"Bob", "42"}, {"Carol", "7", "extra"}},
	}

	desc := table.Describe(table.Rows[0])
	assert.Equal(t, Descriptor{"0": "Bob", "1": "42"}, desc)

	// The synthetic header is sized from the first data row and
	// reused, so the second row's extra cell has no key.
	desc = table.Describe(table.Rows[1])
	assert.Equal(t, Descriptor{"0": "Carol", "1": "7"}, desc)
}
