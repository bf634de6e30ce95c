package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic identifies a file format.
type Magic [4]byte

var (
	// MagicDatabase identifies a fingerprint database (.prdb).
	MagicDatabase = Magic{'P', 'R', 'D', 'B'}
	// MagicCache identifies a sequence cache.
	MagicCache = Magic{'P', 'R', 'S', 'C'}
	// MagicTermDB identifies a term database.
	MagicTermDB = Magic{'P', 'R', 'G', 'O'}
)

func (m Magic) String() string { return string(m[:]) }

// Version is the current format version.
const Version uint16 = 1

// DefaultBlockSize is the uncompressed size of a payload block.
const DefaultBlockSize = 256 * 1024

const (
	headerSize   = 28
	maxBlockSize = 64 * 1024 * 1024
)

var (
	// ErrInvalidMagic is returned when a file has an unexpected magic.
	ErrInvalidMagic = errors.New("persistence: invalid magic")
	// ErrUnsupportedVersion is returned for a newer format version.
	ErrUnsupportedVersion = errors.New("persistence: unsupported version")
)

// CorruptError reports a structurally invalid file.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return "persistence: corrupt file: " + e.Reason
}

func corrupt(format string, args ...any) error {
	return &CorruptError{Reason: fmt.Sprintf(format, args...)}
}

// header is the fixed-size file header.
type header struct {
	Magic       Magic
	Version     uint16
	Compression Compression
	Reserved    uint8
	Count       uint64
	Dim         uint32
	BlockSize   uint32
}

func (h *header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = byte(h.Compression)
	buf[7] = h.Reserved
	binary.LittleEndian.PutUint64(buf[8:], h.Count)
	binary.LittleEndian.PutUint32(buf[16:], h.Dim)
	binary.LittleEndian.PutUint32(buf[20:], h.BlockSize)
	// buf[24:28] reserved
	return buf
}

func readHeader(r io.Reader, want Magic) (header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return header{}, corrupt("truncated header")
		}
		return header{}, err
	}

	var h header
	copy(h.Magic[:], buf[0:4])
	if h.Magic != want {
		return header{}, fmt.Errorf("%w: got %q, want %q", ErrInvalidMagic, h.Magic.String(), want.String())
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	if h.Version == 0 || h.Version > Version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.Compression = Compression(buf[6])
	if !h.Compression.valid() {
		return header{}, corrupt("unknown compression %d", buf[6])
	}
	h.Reserved = buf[7]
	h.Count = binary.LittleEndian.Uint64(buf[8:])
	h.Dim = binary.LittleEndian.Uint32(buf[16:])
	h.BlockSize = binary.LittleEndian.Uint32(buf[20:])
	if h.BlockSize == 0 || h.BlockSize > maxBlockSize {
		return header{}, corrupt("block size %d", h.BlockSize)
	}
	return h, nil
}
