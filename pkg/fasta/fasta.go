package fasta

import (
	"github.com/EdRice4/Macrander/pkg/alphabet"
)

// A struct for one Fasta record
type Record struct {
	ID          string
	Description string
	Seq         string
	Idx         int
}

// Reverse complement a Record's sequence, returning a new Record
func (FR Record) ReverseComplement() Record {
	NFR := Record{ID: FR.ID, Description: FR.Description, Idx: FR.Idx}
	NFR.Seq = alphabet.ReverseComplement(FR.Seq)
	return NFR
}
