package persistence

import (
	"encoding/binary"
	"io"
	"slices"
	"unsafe"

	"github.com/hupe1980/prost/quantization"
	"github.com/hupe1980/prost/store"
)

// maxKeyLength bounds a single identifier or cached sequence.
const maxKeyLength = 1 << 24

// WriteDatabase encodes a fingerprint database.
//
// Payload: count uvarint-prefixed identifiers followed by the row-major
// count×Dim code matrix.
func WriteDatabase(w io.Writer, s *store.Store, opts ...Option) error {
	o := applyOptions(opts)
	h := header{
		Magic:       MagicDatabase,
		Version:     Version,
		Compression: o.Compression,
		Count:       uint64(s.Len()),
		Dim:         store.Dim,
		BlockSize:   uint32(o.BlockSize),
	}
	return writeStream(w, h, o.BlockSize, func(w io.Writer) error {
		return writeColumns(w, s.IDs(), s.Codes())
	})
}

// ReadDatabase decodes a fingerprint database.
func ReadDatabase(r io.Reader) (*store.Store, error) {
	var s *store.Store
	err := readStream(r, MagicDatabase, func(h header, br *blockReader) error {
		ids, codes, err := readColumns(h, br)
		if err != nil {
			return err
		}
		s, err = store.FromColumns(ids, codes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WriteCache encodes a sequence cache. Entries are written in sequence order
// so equal caches produce identical files.
func WriteCache(w io.Writer, c *store.SequenceCache, opts ...Option) error {
	o := applyOptions(opts)

	seqs := make([]string, 0, c.Len())
	fps := make(map[string]quantization.Fingerprint, c.Len())
	if c != nil {
		c.Range(func(seq string, fp quantization.Fingerprint) bool {
			seqs = append(seqs, seq)
			fps[seq] = fp
			return true
		})
	}
	slices.Sort(seqs)

	codes := make([]int8, 0, len(seqs)*store.Dim)
	for _, seq := range seqs {
		fp := fps[seq]
		codes = append(codes, fp[:]...)
	}

	h := header{
		Magic:       MagicCache,
		Version:     Version,
		Compression: o.Compression,
		Count:       uint64(len(seqs)),
		Dim:         store.Dim,
		BlockSize:   uint32(o.BlockSize),
	}
	return writeStream(w, h, o.BlockSize, func(w io.Writer) error {
		return writeColumns(w, seqs, codes)
	})
}

// ReadCache decodes a sequence cache. The returned cache is clean.
func ReadCache(r io.Reader) (*store.SequenceCache, error) {
	c := store.NewSequenceCache()
	err := readStream(r, MagicCache, func(h header, br *blockReader) error {
		seqs, codes, err := readColumns(h, br)
		if err != nil {
			return err
		}
		for i, seq := range seqs {
			c.Load(seq, quantization.FromSlice(codes[i*store.Dim:(i+1)*store.Dim]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func writeColumns(w io.Writer, keys []string, codes []int8) error {
	var scratch []byte
	for _, k := range keys {
		scratch = binary.AppendUvarint(scratch[:0], uint64(len(k)))
		scratch = append(scratch, k...)
		if _, err := w.Write(scratch); err != nil {
			return err
		}
	}
	_, err := w.Write(int8Bytes(codes))
	return err
}

func readColumns(h header, br *blockReader) ([]string, []int8, error) {
	if h.Dim != store.Dim {
		return nil, nil, corrupt("dimension %d, want %d", h.Dim, store.Dim)
	}

	// Every key takes at least one byte, so a bogus count fails while reading
	// keys rather than at allocation time.
	keys := make([]string, 0, min(h.Count, 1<<16))
	var buf []byte
	for i := uint64(0); i < h.Count; i++ {
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, nil, err
		}
		if n > maxKeyLength {
			return nil, nil, corrupt("key of %d bytes", n)
		}
		if uint64(cap(buf)) < n {
			buf = make([]byte, n)
		}
		buf = buf[:n]
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, nil, err
		}
		keys = append(keys, string(buf))
	}

	codes := make([]int8, len(keys)*store.Dim)
	if _, err := io.ReadFull(br, int8Bytes(codes)); err != nil {
		return nil, nil, err
	}
	return keys, codes, nil
}

func int8Bytes(v []int8) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v))
}
