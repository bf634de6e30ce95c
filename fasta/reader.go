package fasta

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// ErrNoHeader is returned when sequence data appears before the first '>'.
var ErrNoHeader = errors.New("fasta: sequence data before first header")

// Record is one FASTA entry.
type Record struct {
	ID       string // header line without '>'
	Sequence string
}

// Reader reads FASTA records from an io.Reader.
type Reader struct {
	sc      *bufio.Scanner
	pending string
	started bool
	done    bool
	err     error
}

// NewReader returns a Reader for r. Lines may be arbitrarily long.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	return &Reader{sc: sc}
}

// Read returns the next record, or io.EOF after the last one.
func (r *Reader) Read() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	if !r.started {
		r.started = true
		if err := r.seekHeader(); err != nil {
			r.err = err
			return Record{}, err
		}
	}
	if r.done {
		r.err = io.EOF
		return Record{}, io.EOF
	}

	rec := Record{ID: r.pending}
	var seq strings.Builder
	for {
		if !r.sc.Scan() {
			if err := r.sc.Err(); err != nil {
				r.err = err
				return Record{}, err
			}
			r.done = true
			break
		}
		line := r.sc.Text()
		if strings.HasPrefix(line, ">") {
			r.pending = strings.TrimSpace(line[1:])
			break
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	rec.Sequence = seq.String()
	return rec, nil
}

func (r *Reader) seekHeader() error {
	for r.sc.Scan() {
		line := r.sc.Text()
		if strings.HasPrefix(line, ">") {
			r.pending = strings.TrimSpace(line[1:])
			return nil
		}
		if strings.TrimSpace(line) != "" {
			return ErrNoHeader
		}
	}
	if err := r.sc.Err(); err != nil {
		return err
	}
	r.done = true
	return nil
}

// All iterates over the remaining records. Iteration stops after the first
// error, which is yielded with a zero Record.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll reads every record of r.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	for rec, err := range NewReader(r).All() {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
