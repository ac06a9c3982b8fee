/*
Package phylip reads and writes tab-delimited phylip alignments in sequential
and interleaved layouts
*/
package phylip

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/EdRice4/Macrander/pkg/fasta"
)

// DefaultWidth is the number of columns in each interleaved block
const DefaultWidth = 50

var (
	errBadlyFormedPhylip = errors.New("badly formed phylip file")
	errEmptyPhylip       = errors.New("empty phylip file")
	errBlockSize         = errors.New("interleaved block has the wrong number of lines")
)

// a strict phylip header line: number of taxa and number of characters
var dimsLine = regexp.MustCompile(`^\s*\d+\s+\d+\s*$`)

// WriteSequential writes one ID\tSEQ line per record
func WriteSequential(w io.Writer, records []fasta.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.ID + "\t" + r.Seq + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteInterleaved writes the first width columns as ID\tSEQ lines, then each
// following block of width columns as bare sequence lines. Every block is
// followed by a blank line. The block count comes from the first record, so
// records should be the same length.
func WriteInterleaved(w io.Writer, records []fasta.Record, width int) error {
	if width <= 0 {
		return fmt.Errorf("interleaved block width must be positive (got %d)", width)
	}
	bw := bufio.NewWriter(w)
	if len(records) == 0 {
		return bw.Flush()
	}

	block := func(seq string, start int) string {
		if start >= len(seq) {
			return ""
		}
		end := start + width
		if end > len(seq) {
			end = len(seq)
		}
		return seq[start:end]
	}

	for _, r := range records {
		if _, err := bw.WriteString(r.ID + "\t" + block(r.Seq, 0) + "\n"); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}

	for start := width; start < len(records[0].Seq); start += width {
		for _, r := range records {
			if _, err := bw.WriteString(block(r.Seq, start) + "\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Read parses a phylip file in either layout. A leading "ntax nchar" line is
// skipped if present. Names and sequences are separated by a tab.
func Read(r io.Reader) ([]fasta.Record, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024*1024)

	records := make([]fasta.Record, 0)
	blockNumber := 0
	lineInBlock := 0
	first := true

	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")

		if first && dimsLine.MatchString(line) && !strings.Contains(line, "\t") {
			first = false
			continue
		}
		first = false

		if strings.TrimSpace(line) == "" {
			if lineInBlock > 0 {
				if blockNumber > 0 && lineInBlock != len(records) {
					return nil, fmt.Errorf("%w (block %d)", errBlockSize, blockNumber+1)
				}
				blockNumber++
				lineInBlock = 0
			}
			continue
		}

		if blockNumber == 0 {
			fields := strings.SplitN(line, "\t", 2)
			if len(fields) != 2 || strings.TrimSpace(fields[0]) == "" {
				return nil, fmt.Errorf("%w: %q", errBadlyFormedPhylip, line)
			}
			id := strings.TrimSpace(fields[0])
			records = append(records, fasta.Record{ID: id, Seq: strings.TrimSpace(fields[1]), Idx: len(records)})
		} else {
			if lineInBlock >= len(records) {
				return nil, fmt.Errorf("%w (block %d)", errBlockSize, blockNumber+1)
			}
			records[lineInBlock].Seq += strings.TrimSpace(line)
		}
		lineInBlock++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if blockNumber > 0 && lineInBlock > 0 && lineInBlock != len(records) {
		return nil, fmt.Errorf("%w (block %d)", errBlockSize, blockNumber+1)
	}
	if len(records) == 0 {
		return nil, errEmptyPhylip
	}
	return records, nil
}
