/*
Package contam removes contaminant sequences, listed by ID, from fasta files
*/
package contam

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/fasta"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/logger"
)

const (
	FastaMarker = ".fasta"
	ListMarker  = ".txt"
)

// ReadList reads one sequence ID per line. Surrounding whitespace is trimmed
// and blank lines are skipped.
func ReadList(r io.Reader) ([]string, error) {
	ids := make([]string, 0)
	s := bufio.NewScanner(r)
	for s.Scan() {
		id := strings.TrimSpace(s.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Remove copies the records in in to out, leaving out any whose ID is in ids.
// IDs must match exactly. Returns the number of records removed.
func Remove(in io.Reader, ids []string, out io.Writer) (int, error) {
	records, err := fasta.ReadAll(in)
	if err != nil {
		return 0, err
	}
	kept := keep(records, ids)
	if err = fasta.Write(out, kept); err != nil {
		return 0, err
	}
	return len(records) - len(kept), nil
}

// keep returns the records whose ID isn't in ids, in their original order
func keep(records []fasta.Record, ids []string) []fasta.Record {
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	kept := make([]fasta.Record, 0, len(records))
	found := make(map[string]bool, len(ids))
	for _, record := range records {
		if remove[record.ID] {
			found[record.ID] = true
			continue
		}
		kept = append(kept, record)
	}

	for _, id := range ids {
		if !found[id] {
			logger.Warn("contaminant not found", zap.String("id", id))
		}
	}
	return kept
}

// OutputPath is where the cleaned copy of fastaPath is written
func OutputPath(fastaPath string) string {
	return batch.DerivePath(fastaPath, FastaMarker, "_new.fasta")
}

// RemoveFile removes the records listed in listPath from fastaPath, writing the
// result to <name>_new.fasta. Nothing is written if the fasta can't be read.
func RemoveFile(fastaPath, listPath string) (batch.Result, error) {
	lf, err := gfio.Open(listPath)
	if err != nil {
		return batch.Result{}, err
	}
	ids, err := ReadList(lf)
	lf.Close()
	if err != nil {
		return batch.Result{}, err
	}

	in, err := gfio.Open(fastaPath)
	if err != nil {
		return batch.Result{}, err
	}
	records, err := fasta.ReadAll(in)
	in.Close()
	if err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", fastaPath, err)
	}
	kept := keep(records, ids)

	outPath := OutputPath(fastaPath)
	out, err := os.Create(outPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer out.Close()

	if err = fasta.Write(out, kept); err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", outPath, err)
	}
	logger.Debug("removed contaminants", zap.String("file", fastaPath), zap.Int("removed", len(records)-len(kept)))

	if err = out.Close(); err != nil {
		return batch.Result{}, err
	}

	return batch.Result{Inputs: []string{fastaPath, listPath}, Outputs: []string{outPath}}, nil
}

// Jobs pairs the sorted fasta files in dir with the sorted ID lists
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Pairs(dir,
		batch.Selector{Marker: FastaMarker, Exclude: []string{"_new", "_nuc", ".transdecoder", ".fai"}},
		batch.Selector{Marker: ListMarker, Exclude: []string{"_GO", "_TPM", "_CC", "_BP", "_MF", "_CUM"}},
		nil)
}
