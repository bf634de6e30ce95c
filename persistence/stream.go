package persistence

import (
	"encoding/binary"
	"errors"
	"io"
)

// writeStream writes header, the payload produced by body, and the checksum
// trailer.
func writeStream(w io.Writer, h header, blockSize int, body func(w io.Writer) error) error {
	cw := NewChecksumWriter(w)
	if _, err := cw.Write(h.encode()); err != nil {
		return err
	}

	bw := newBlockWriter(cw, h.Compression, blockSize)
	if err := body(bw); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}

	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], cw.Sum())
	_, err := w.Write(trailer[:])
	return err
}

// readStream validates the header, hands the payload to body and verifies
// the checksum trailer. body must consume exactly the declared payload.
func readStream(r io.Reader, want Magic, body func(h header, br *blockReader) error) error {
	cr := NewChecksumReader(r)
	h, err := readHeader(cr, want)
	if err != nil {
		return err
	}

	br := newBlockReader(cr, h.Compression, int(h.BlockSize))
	if err := body(h, br); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return corrupt("payload shorter than declared")
		}
		return err
	}
	if err := br.drain(); err != nil {
		return err
	}

	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return truncated(err)
	}
	return cr.Verify(binary.LittleEndian.Uint32(trailer[:]))
}

func normalizeBlockSize(n int) int {
	if n <= 0 {
		return DefaultBlockSize
	}
	return min(n, maxBlockSize)
}
