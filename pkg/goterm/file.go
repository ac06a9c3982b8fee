package goterm

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/logger"
)

const (
	GOMarker  = "_GO.txt"
	TPMMarker = "_TPM.txt"
)

// OutputPaths are the per-category outputs for a GO file, in Categories order,
// followed by the cumulative table
func OutputPaths(goPath string) []string {
	paths := make([]string, 0, len(Categories)+1)
	for _, c := range Categories {
		paths = append(paths, batch.DerivePath(goPath, GOMarker, "_"+c.Abbrev+".txt"))
	}
	return append(paths, batch.DerivePath(goPath, GOMarker, "_CUM.txt"))
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := gfio.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ConcatenateFiles reads a GO file and its TPM file and writes <stem>_CC.txt,
// <stem>_BP.txt, <stem>_MF.txt and <stem>_CUM.txt
func ConcatenateFiles(goPath, tpmPath string) (batch.Result, error) {
	annotations, err := readFile(goPath, ReadAnnotations)
	if err != nil {
		return batch.Result{}, err
	}
	tpm, err := readFile(tpmPath, ReadExpression)
	if err != nil {
		return batch.Result{}, err
	}

	outputs := OutputPaths(goPath)
	byCategory := make(map[string][]Row, len(Categories))

	for i, c := range Categories {
		rows, err := Concatenate(FilterCategory(annotations, c.Name), tpm)
		if err != nil {
			return batch.Result{}, fmt.Errorf("%s: %w", tpmPath, err)
		}
		logger.Debug("concatenated",
			zap.String("category", c.Name),
			zap.Int("transcripts", len(rows)))
		byCategory[c.Name] = rows

		err = writeFile(outputs[i], func(w io.Writer) error { return Write(w, rows) })
		if err != nil {
			return batch.Result{}, err
		}
	}

	totals := Cumulative(byCategory)
	err = writeFile(outputs[len(Categories)], func(w io.Writer) error { return WriteCumulative(w, totals) })
	if err != nil {
		return batch.Result{}, err
	}

	return batch.Result{Inputs: []string{goPath, tpmPath}, Outputs: outputs}, nil
}

// Jobs pairs every GO file in dir with the TPM file of the same stem
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Pairs(dir, batch.Selector{Marker: GOMarker}, batch.Selector{Marker: TPMMarker}, batch.TrimMarker)
}
