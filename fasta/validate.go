package fasta

// MinLength is the shortest sequence accepted for embedding.
const MinLength = 5

// Alphabet lists the accepted residue symbols: the 20 standard amino acids
// followed by the ambiguity codes X, B, U, Z and O.
const Alphabet = "ACDEFGHIKLMNPQRSTVWYXBUZO"

var accepted [256]bool

func init() {
	for i := range len(Alphabet) {
		c := Alphabet[i]
		accepted[c] = true
		accepted[c+'a'-'A'] = true
	}
}

// CheckAlphabet reports whether every symbol of seq is in Alphabet, case
// insensitively. On failure it returns the first offending symbol.
func CheckAlphabet(seq string) (bool, rune) {
	for _, c := range seq {
		if c >= 256 || !accepted[c] {
			return false, c
		}
	}
	return true, 0
}

// Validate reports whether seq can be embedded: at least MinLength symbols,
// all in Alphabet. A rejected symbol is returned when the alphabet check fails.
func Validate(seq string) (bool, rune) {
	if len(seq) < MinLength {
		return false, 0
	}
	return CheckAlphabet(seq)
}
