package fasta

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	in := "\n>sp|P1|A_HUMAN first\nMKT\n  AYIA \n\n>second\r\nQQQQQ\r\n>empty\n"

	recs, err := ReadAll(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{ID: "sp|P1|A_HUMAN first", Sequence: "MKTAYIA"},
		{ID: "second", Sequence: "QQQQQ"},
		{ID: "empty", Sequence: ""},
	}, recs)
}

func TestReader_Empty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_NoHeader(t *testing.T) {
	_, err := ReadAll(strings.NewReader("MKT\n>x\nAAA\n"))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReader_EOFIsSticky(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nAAAAA\n"))
	_, err := r.Read()
	require.NoError(t, err)
	for range 2 {
		_, err = r.Read()
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestReader_AllStopsEarly(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nA\n>b\nB\n>c\nC\n"))
	var ids []string
	for rec, err := range r.All() {
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		if len(ids) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, ids)

	rec, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "c", rec.ID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		ok     bool
		symbol rune
	}{
		{"standard", "ACDEFGHIKLMNPQRSTVWY", true, 0},
		{"ambiguous", "XBUZOXB", true, 0},
		{"lowercase", "mktayia", true, 0},
		{"too short", "MKTA", false, 0},
		{"digit", "MKT1AYIA", false, '1'},
		{"J", "MKTJAYIA", false, 'J'},
		{"unicode", "MKTÄAYIA", false, 'Ä'},
		{"gap", "MKT-AYIA", false, '-'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, sym := Validate(tt.seq)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.symbol, sym)
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Header
	}{
		{
			name: "with gene",
			id:   "sp|P69905|HBA_HUMAN Hemoglobin subunit alpha OS=Homo sapiens OX=9606 GN=HBA1 PE=1 SV=2",
			want: Header{
				Accession:   "P69905",
				Name:        "HBA_HUMAN",
				Description: "Hemoglobin subunit alpha",
				Organism:    "Homo sapiens",
				TaxonID:     "9606",
				Gene:        "HBA1",
			},
		},
		{
			name: "without gene",
			id:   "sp|Q9XYZ1|ABC_ECOLI Putative transporter OS=Escherichia coli OX=562 PE=3 SV=1",
			want: Header{
				Accession:   "Q9XYZ1",
				Name:        "ABC_ECOLI",
				Description: "Putative transporter",
				Organism:    "Escherichia coli",
				TaxonID:     "562",
			},
		},
		{
			name: "other",
			id:   "my_protein some description",
			want: Header{Accession: "my_protein some description"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeader(tt.id))
		})
	}
}
