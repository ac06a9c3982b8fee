// Package alphabet provides nucleotide complements, codon translation and
// amino acid validation
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// the standard genetic code, codons ordered TCAG at each position
const standardCode = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

var errCodonLength = errors.New("nucleotide string not divisible by 3")

// iupac lists the unambiguous nucleotides each IUPAC code can stand for
var iupac = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT", 'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG", 'N': "ACGT",
}

// MakeCompArray returns an array that maps IUPAC nucleotide codes (either case)
// to their complement. Bytes that aren't nucleotide codes map to themselves.
func MakeCompArray() [256]byte {
	var CA [256]byte
	for i := range CA {
		CA[i] = byte(i)
	}
	pairs := []string{"AT", "CG", "RY", "KM", "BV", "DH", "SS", "WW", "NN"}
	for _, p := range pairs {
		a, b := p[0], p[1]
		CA[a], CA[b] = b, a
		CA[a+32], CA[b+32] = b+32, a+32
	}
	CA['U'] = 'A'
	CA['u'] = 'a'
	return CA
}

// Complement a nucleotide sequence
func Complement(seq string) string {
	CA := MakeCompArray()
	ba := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		ba[i] = CA[seq[i]]
	}
	return string(ba)
}

// ReverseComplement a nucleotide sequence
func ReverseComplement(seq string) string {
	CA := MakeCompArray()
	ba := make([]byte, len(seq))
	for i, j := 0, len(seq)-1; j >= 0; i, j = i+1, j-1 {
		ba[i] = CA[seq[j]]
	}
	return string(ba)
}

func baseIndex(b byte) int {
	switch b {
	case 'T':
		return 0
	case 'C':
		return 1
	case 'A':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// translateCodon returns the amino acid for one codon. A codon with ambiguous
// nucleotides is resolved if it can only possibly represent one amino acid,
// otherwise it is an X
func translateCodon(codon string) byte {
	var aa byte
	for _, b1 := range iupac[codon[0]] {
		for _, b2 := range iupac[codon[1]] {
			for _, b3 := range iupac[codon[2]] {
				t := standardCode[16*baseIndex(byte(b1))+4*baseIndex(byte(b2))+baseIndex(byte(b3))]
				if aa != 0 && aa != t {
					return 'X'
				}
				aa = t
			}
		}
	}
	if aa == 0 {
		return 'X'
	}
	return aa
}

// Translate a nucleotide sequence to a protein sequence using the standard code
func Translate(nuc string) (string, error) {
	if len(nuc)%3 != 0 {
		return "", errCodonLength
	}
	nuc = strings.ToUpper(nuc)
	var sb strings.Builder
	sb.Grow(len(nuc) / 3)
	for i := 0; i < len(nuc); i += 3 {
		sb.WriteByte(translateCodon(nuc[i : i+3]))
	}
	return sb.String(), nil
}

// IsAminoAcid reports whether b is an IUPAC amino acid code, including the
// ambiguity codes B, Z, J and X and the rare residues U and O
func IsAminoAcid(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ValidatePeptide returns an error naming the first character of seq that is
// not an amino acid code. A single stop ('*') is allowed as the last character.
func ValidatePeptide(seq string) error {
	for i := 0; i < len(seq); i++ {
		if IsAminoAcid(seq[i]) {
			continue
		}
		if seq[i] == '*' && i == len(seq)-1 {
			continue
		}
		return fmt.Errorf("invalid amino acid at position %d (%q)", i+1, seq[i])
	}
	return nil
}
