// Package fasta reads protein FASTA files, validates sequences and parses
// UniProt-style headers.
package fasta
