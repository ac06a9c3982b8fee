package motif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/fasta"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/logger"
)

// PepMarker is the naming convention for peptide files
const PepMarker = ".pep"

// hit is a peptide with at least one ShK domain
type hit struct {
	record  fasta.Record
	domains []Domain
}

// scanAll reads every peptide in in and returns those with a domain
func scanAll(in io.Reader) ([]hit, error) {
	r := fasta.NewReader(in)
	hits := make([]hit, 0)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		domains, err := Scan(record.Seq)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", record.ID, err)
		}
		if len(domains) == 0 {
			continue
		}

		logger.Debug("ShK domain",
			zap.String("peptide", record.ID),
			zap.Int("domains", len(domains)),
			zap.String("marked", Mark(record.Seq, domains)))

		hits = append(hits, hit{record: record, domains: domains})
	}
	return hits, nil
}

func writeHits(hits []hit, out, report io.Writer) error {
	kept := make([]fasta.Record, len(hits))
	rw := bufio.NewWriter(report)
	if _, err := rw.WriteString("peptide_id\tstart\tend\tdomain\n"); err != nil {
		return err
	}
	for i, h := range hits {
		for _, d := range h.domains {
			line := h.record.ID + "\t" + strconv.Itoa(d.Start) + "\t" + strconv.Itoa(d.End) + "\t" + d.Seq + "\n"
			if _, err := rw.WriteString(line); err != nil {
				return err
			}
		}
		kept[i] = h.record
	}

	if err := fasta.Write(out, kept); err != nil {
		return err
	}
	return rw.Flush()
}

// Filter reads peptides in fasta format from in and writes those with at least
// one ShK domain to out, unchanged. Each domain found is reported to report as
// a peptide_id, start, end, domain line. Returns the number of peptides kept.
func Filter(in io.Reader, out, report io.Writer) (int, error) {
	hits, err := scanAll(in)
	if err != nil {
		return 0, err
	}
	if err = writeHits(hits, out, report); err != nil {
		return 0, err
	}
	return len(hits), nil
}

// OutputPaths are the files written for one peptide file
func OutputPaths(pepPath string) (filtered, report string) {
	return batch.DerivePath(pepPath, PepMarker, "_filtered.pep"), batch.DerivePath(pepPath, PepMarker, "_ShK.tsv")
}

// FilterFile runs Filter on the file at pepPath, writing <name>_filtered.pep and
// <name>_ShK.tsv next to it. Nothing is written if the peptides can't be read.
func FilterFile(pepPath string) (batch.Result, error) {
	in, err := gfio.Open(pepPath)
	if err != nil {
		return batch.Result{}, err
	}
	hits, err := scanAll(in)
	in.Close()
	if err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", pepPath, err)
	}

	filteredPath, reportPath := OutputPaths(pepPath)

	out, err := os.Create(filteredPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer out.Close()

	report, err := os.Create(reportPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer report.Close()

	if err = writeHits(hits, out, report); err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", pepPath, err)
	}
	logger.Debug("filtered peptides", zap.String("file", pepPath), zap.Int("kept", len(hits)))

	if err = out.Close(); err != nil {
		return batch.Result{}, err
	}
	if err = report.Close(); err != nil {
		return batch.Result{}, err
	}

	return batch.Result{Inputs: []string{pepPath}, Outputs: []string{filteredPath, reportPath}}, nil
}

// Jobs finds the peptide files in dir, skipping earlier outputs
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Singles(dir, batch.Selector{Marker: PepMarker, Exclude: []string{"_filtered"}})
}
