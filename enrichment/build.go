package enrichment

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrMalformedAnnotation is returned for an annotation line that is not
// "accession,term; term; ...".
var ErrMalformedAnnotation = errors.New("enrichment: malformed annotation line")

// ReadAnnotationCSV reads "accession,GO:1; GO:2" lines into a map from
// accession to its de-duplicated, sorted term list. An empty term list is
// recorded as the blank term.
func ReadAnnotationCSV(r io.Reader) (map[string][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	out := make(map[string][]string)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("enrichment: read annotations: %w", err)
		}
		if len(rec) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedAnnotation, line, len(rec))
		}
		out[strings.TrimSpace(rec[0])] = splitTerms(rec[1])
	}
}

func splitTerms(list string) []string {
	list = strings.ReplaceAll(list, " ", "")
	terms := strings.Split(list, ";")
	slices.Sort(terms)
	return slices.Compact(terms)
}

// ReadOBO extracts term descriptions (the name: line) from the [Term]
// stanzas of an OBO ontology. The first stanza of an id wins.
func ReadOBO(r io.Reader) (map[string]string, error) {
	desc := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		inTerm bool
		id     string
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "["):
			inTerm = line == "[Term]"
			id = ""
		case !inTerm:
		case strings.HasPrefix(line, "id: "):
			id = strings.TrimSpace(strings.TrimPrefix(line, "id: "))
		case strings.HasPrefix(line, "name: ") && id != "":
			if _, ok := desc[id]; !ok {
				desc[id] = strings.TrimSpace(strings.TrimPrefix(line, "name: "))
			}
			id = ""
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("enrichment: read obo: %w", err)
	}
	return desc, nil
}

// Accession extracts the accession from a "db|ACC|NAME ..." identifier.
// Identifiers without a '|' are returned unchanged.
func Accession(id string) string {
	parts := strings.SplitN(id, "|", 3)
	if len(parts) < 2 {
		return id
	}
	return parts[1]
}

// BuildTermDB creates the annotation database for the targets ids.
//
// Targets whose accession has no annotation get the blank term. Frequency
// counts every occurrence, the blank term included, and carries the reserved
// CountKey and UniqueKey totals. Every GO term without an ontology entry gets
// an empty description.
func BuildTermDB(annotations map[string][]string, ids []string, obo io.Reader) (*TermDB, error) {
	db := &TermDB{
		Terms:     make([][]string, len(ids)),
		Frequency: make(map[string]int),
	}

	total := 0
	for i, id := range ids {
		terms, ok := annotations[Accession(id)]
		if !ok || len(terms) == 0 {
			terms = []string{""}
		}
		db.Terms[i] = terms
		for _, t := range terms {
			db.Frequency[t]++
			total++
		}
	}
	unique := len(db.Frequency)
	db.Frequency[CountKey] = total
	db.Frequency[UniqueKey] = unique

	if obo != nil {
		desc, err := ReadOBO(obo)
		if err != nil {
			return nil, err
		}
		db.Descriptions = desc
	} else {
		db.Descriptions = make(map[string]string)
	}
	for t := range db.Frequency {
		if strings.HasPrefix(t, "GO:") {
			if _, ok := db.Descriptions[t]; !ok {
				db.Descriptions[t] = ""
			}
		}
	}
	return db, nil
}
