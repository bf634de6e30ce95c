package persistence

import (
	"encoding/binary"
	"errors"
	"io"
)

// blockWriter buffers a payload and writes it as compressed blocks.
type blockWriter struct {
	w         io.Writer
	c         Compression
	blockSize int
	buf       []byte
	frame     []byte
}

func newBlockWriter(w io.Writer, c Compression, blockSize int) *blockWriter {
	return &blockWriter{
		w:         w,
		c:         c,
		blockSize: blockSize,
		buf:       make([]byte, 0, blockSize),
	}
}

func (b *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := b.blockSize - len(b.buf)
		if space == 0 {
			if err := b.flush(); err != nil {
				return total, err
			}
			space = b.blockSize
		}
		n := min(space, len(p))
		b.buf = append(b.buf, p[:n]...)
		total += n
		p = p[n:]
	}
	return total, nil
}

func (b *blockWriter) flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	var err error
	b.frame, err = compressBlock(b.frame[:0], b.buf, b.c)
	if err != nil {
		return err
	}
	if _, err := b.w.Write(b.frame); err != nil {
		return err
	}
	b.buf = b.buf[:0]
	return nil
}

// Close flushes the last block and writes the end marker.
func (b *blockWriter) Close() error {
	if err := b.flush(); err != nil {
		return err
	}
	var end [blockHeaderSize]byte
	_, err := b.w.Write(end[:])
	return err
}

// blockReader decodes the block stream written by blockWriter.
type blockReader struct {
	r         io.Reader
	c         Compression
	blockSize int
	buf       []byte // decoded block
	pos       int
	src       []byte
	done      bool
}

func newBlockReader(r io.Reader, c Compression, blockSize int) *blockReader {
	return &blockReader{r: r, c: c, blockSize: blockSize}
}

func (b *blockReader) Read(p []byte) (int, error) {
	for b.pos == len(b.buf) {
		if b.done {
			return 0, io.EOF
		}
		if err := b.next(); err != nil {
			return 0, err
		}
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += n
	return n, nil
}

func (b *blockReader) next() error {
	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(b.r, hdr[:]); err != nil {
		return truncated(err)
	}
	size := int(binary.LittleEndian.Uint32(hdr[0:]))
	csize := int(binary.LittleEndian.Uint32(hdr[4:]))

	if size == 0 {
		if csize != 0 {
			return corrupt("malformed end marker")
		}
		b.done = true
		b.buf, b.pos = b.buf[:0], 0
		return nil
	}
	if size > b.blockSize || csize > b.blockSize+b.blockSize/8+64 {
		return corrupt("block of %d/%d bytes exceeds block size %d", size, csize, b.blockSize)
	}

	if cap(b.buf) < size {
		b.buf = make([]byte, size)
	}
	b.buf, b.pos = b.buf[:size], 0

	if csize == 0 {
		_, err := io.ReadFull(b.r, b.buf)
		return truncated(err)
	}
	if cap(b.src) < csize {
		b.src = make([]byte, csize)
	}
	b.src = b.src[:csize]
	if _, err := io.ReadFull(b.r, b.src); err != nil {
		return truncated(err)
	}
	return decompressBlock(b.buf, b.src, b.c)
}

// drain consumes the rest of the stream up to and including the end marker.
// A payload longer than its declared contents is corrupt.
func (b *blockReader) drain() error {
	var one [1]byte
	n, err := b.Read(one[:])
	if n > 0 {
		return corrupt("trailing payload data")
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupt("truncated block")
	}
	return err
}

// ReadByte lets the payload decoder read uvarints directly.
func (b *blockReader) ReadByte() (byte, error) {
	for b.pos == len(b.buf) {
		if b.done {
			return 0, io.EOF
		}
		if err := b.next(); err != nil {
			return 0, err
		}
	}
	c := b.buf[b.pos]
	b.pos++
	return c, nil
}
