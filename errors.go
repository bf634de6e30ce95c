package prost

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is the cause of every per-sequence build rejection.
	ErrRejected = errors.New("sequence rejected")

	// ErrNoEmbedder is returned by Build when a sequence is not cached and no
	// embedder is configured.
	ErrNoEmbedder = errors.New("no embedder configured")
)

// ErrSequenceTooShort indicates a sequence below fasta.MinLength residues.
type ErrSequenceTooShort struct {
	ID     string
	Length int
}

func (e *ErrSequenceTooShort) Error() string {
	return fmt.Sprintf("sequence %q too short: %d residues", e.ID, e.Length)
}

func (e *ErrSequenceTooShort) Unwrap() error { return ErrRejected }

// ErrInvalidSequence indicates a symbol outside the amino-acid alphabet.
type ErrInvalidSequence struct {
	ID     string
	Symbol rune
}

func (e *ErrInvalidSequence) Error() string {
	return fmt.Sprintf("sequence %q contains invalid symbol %q", e.ID, e.Symbol)
}

func (e *ErrInvalidSequence) Unwrap() error { return ErrRejected }

// ErrDuplicateID indicates an identifier seen earlier in the same input.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate identifier %q", e.ID)
}

func (e *ErrDuplicateID) Unwrap() error { return ErrRejected }
