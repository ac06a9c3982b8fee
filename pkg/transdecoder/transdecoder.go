/*
Package transdecoder recovers the nucleotide sequences behind TransDecoder
peptide predictions, using the transcript coordinates in each peptide header
*/
package transdecoder

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/alphabet"
	"github.com/EdRice4/Macrander/pkg/fasta"
	"github.com/EdRice4/Macrander/pkg/logger"
)

// Wrap is the line length of the nucleotide output
const Wrap = 50

var (
	errNoCoordinates     = errors.New("no SEQID:START-END(STRAND) tag in peptide header")
	errMissingTranscript = errors.New("transcript not found in nucleotide fasta")
	errOutOfRange        = errors.New("coordinates are outside the transcript")
)

var coordinates = regexp.MustCompile(`([\w.|]+):(\d+)-(\d+)\(([+-])\)`)

// Hit is the location of one predicted peptide in its transcript. Start and
// End are 1-based and inclusive, as written by TransDecoder, so Start > End on
// the minus strand.
type Hit struct {
	PeptideID string
	SeqID     string
	Start     int
	End       int
	Strand    byte
}

// ParseHeader reads the first coordinate tag in a peptide fasta header (without
// the leading '>'). The peptide ID is the first word of the header.
func ParseHeader(header string) (Hit, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return Hit{}, errNoCoordinates
	}
	m := coordinates.FindStringSubmatch(header)
	if m == nil {
		return Hit{}, fmt.Errorf("%w: %s", errNoCoordinates, header)
	}
	start, err := strconv.Atoi(m[2])
	if err != nil {
		return Hit{}, err
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return Hit{}, err
	}
	if start == 0 || end == 0 {
		return Hit{}, fmt.Errorf("%w: %s", errOutOfRange, m[0])
	}
	return Hit{PeptideID: fields[0], SeqID: m[1], Start: start, End: end, Strand: m[4][0]}, nil
}

// Span returns the hit as a 0-based half-open interval, lo < hi
func (h Hit) Span() (lo, hi int) {
	if h.Start <= h.End {
		return h.Start - 1, h.End
	}
	return h.End - 1, h.Start
}

// Tag is the coordinate tag as it appears in the peptide header
func (h Hit) Tag() string {
	return h.SeqID + ":" + strconv.Itoa(h.Start) + "-" + strconv.Itoa(h.End) + "(" + string(h.Strand) + ")"
}

// Source gives access to transcript subsequences by 0-based half-open interval
type Source interface {
	Subseq(name string, lo, hi int) (string, error)
}

// Nucleotides returns the coding sequence for h as a fasta record named after
// the peptide, reverse complemented if it is on the minus strand
func Nucleotides(src Source, h Hit) (fasta.Record, error) {
	lo, hi := h.Span()
	seq, err := src.Subseq(h.SeqID, lo, hi)
	if err != nil {
		return fasta.Record{}, err
	}
	record := fasta.Record{ID: h.PeptideID, Description: h.PeptideID + " " + h.Tag(), Seq: seq}
	if h.Strand == '-' {
		record = record.ReverseComplement()
	}
	return record, nil
}

// translationMatches reports whether nuc translates to pep, ignoring case and a
// trailing stop on either
func translationMatches(nuc, pep string) bool {
	aa, err := alphabet.Translate(nuc)
	if err != nil {
		return false
	}
	aa = strings.TrimSuffix(strings.ToUpper(aa), "*")
	return aa == strings.TrimSuffix(strings.ToUpper(pep), "*")
}

// Extract writes the nucleotide sequence of every peptide in pep to out, in
// the order of pep. If check is true, each sequence is translated and a
// warning is logged when it doesn't match its peptide. Returns the number of
// records written.
func Extract(pep io.Reader, src Source, out io.Writer, check bool) (int, error) {
	r := fasta.NewReader(pep)
	records := make([]fasta.Record, 0)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		hit, err := ParseHeader(record.Description)
		if err != nil {
			return 0, err
		}

		nuc, err := Nucleotides(src, hit)
		if err != nil {
			return 0, fmt.Errorf("%s (%s): %w", hit.PeptideID, hit.Tag(), err)
		}

		if check && !translationMatches(nuc.Seq, record.Seq) {
			logger.Warn("translation does not match peptide",
				zap.String("peptide", hit.PeptideID),
				zap.String("location", hit.Tag()))
		}

		nuc.Idx = len(records)
		records = append(records, nuc)
	}

	if err := fasta.WriteWrap(out, records, Wrap); err != nil {
		return 0, err
	}
	return len(records), nil
}
