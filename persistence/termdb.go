package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/prost/codec"
	"github.com/hupe1980/prost/enrichment"
)

// WriteTermDB encodes a term database. The payload is the codec name
// followed by the encoded TermDB, so files stay readable when the default
// codec changes.
func WriteTermDB(w io.Writer, db *enrichment.TermDB, opts ...Option) error {
	o := applyOptions(opts)
	h := header{
		Magic:       MagicTermDB,
		Version:     Version,
		Compression: o.Compression,
		Count:       uint64(db.Len()),
		BlockSize:   uint32(o.BlockSize),
	}
	return writeStream(w, h, o.BlockSize, func(w io.Writer) error {
		name := o.Codec.Name()
		prefix := binary.AppendUvarint(nil, uint64(len(name)))
		if _, err := w.Write(append(prefix, name...)); err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := codec.Encode(&buf, o.Codec, db); err != nil {
			return err
		}
		prefix = binary.AppendUvarint(prefix[:0], uint64(buf.Len()))
		if _, err := w.Write(prefix); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// ReadTermDB decodes a term database.
func ReadTermDB(r io.Reader) (*enrichment.TermDB, error) {
	db := &enrichment.TermDB{}
	err := readStream(r, MagicTermDB, func(h header, br *blockReader) error {
		name, err := readPrefixed(br, 256)
		if err != nil {
			return err
		}
		c, ok := codec.ByName(string(name))
		if !ok {
			return fmt.Errorf("persistence: unknown codec %q", name)
		}

		data, err := readPrefixed(br, maxBlockSize*16)
		if err != nil {
			return err
		}
		if err := c.Unmarshal(data, db); err != nil {
			return corrupt("term database: %v", err)
		}
		if uint64(db.Len()) != h.Count {
			return corrupt("term database holds %d targets, header says %d", db.Len(), h.Count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func readPrefixed(br *blockReader, limit uint64) ([]byte, error) {
	n, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, corrupt("field of %d bytes", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
