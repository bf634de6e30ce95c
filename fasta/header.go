package fasta

import "regexp"

// Header holds the fields of a UniProt FASTA header.
type Header struct {
	Accession   string `json:"accession"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Organism    string `json:"organism"`
	TaxonID     string `json:"taxon_id"`
	Gene        string `json:"gene"`
}

var (
	uniprotWithGene = regexp.MustCompile(`\|(\w+)\|(\w+_\w+) (.*) OS=(.*) OX=(\d+) GN=(.*) PE=`)
	uniprot         = regexp.MustCompile(`\|(\w+)\|(\w+_\w+) (.*) OS=(.*) OX=(\d+) PE=`)
)

// ParseHeader splits a UniProt header
//
//	sp|ACC|NAME_ORG description OS=organism OX=taxid [GN=gene] PE=...
//
// into its fields. A header of another shape yields Accession = id and empty
// remaining fields.
func ParseHeader(id string) Header {
	if m := uniprotWithGene.FindStringSubmatch(id); m != nil {
		return Header{Accession: m[1], Name: m[2], Description: m[3], Organism: m[4], TaxonID: m[5], Gene: m[6]}
	}
	if m := uniprot.FindStringSubmatch(id); m != nil {
		return Header{Accession: m[1], Name: m[2], Description: m[3], Organism: m[4], TaxonID: m[5]}
	}
	return Header{Accession: id}
}
