package transdecoder

import (
	"fmt"
	"os"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/gfio"
)

const (
	PepMarker   = ".pep"
	FastaMarker = ".fasta"
)

// OutputPath is where the nucleotide sequences for fastaPath are written
func OutputPath(fastaPath string) string {
	return batch.DerivePath(fastaPath, FastaMarker, "_nuc.fasta")
}

// ExtractFile writes the nucleotide sequence of every peptide in pepPath, taken
// from the transcripts in fastaPath, to <name>_nuc.fasta
func ExtractFile(pepPath, fastaPath string, check bool) (batch.Result, error) {
	src, closer, err := OpenSource(fastaPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer closer.Close()

	pep, err := gfio.Open(pepPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer pep.Close()

	outPath := OutputPath(fastaPath)
	out, err := os.Create(outPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer out.Close()

	if _, err = Extract(pep, src, out, check); err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", pepPath, err)
	}
	if err = out.Close(); err != nil {
		return batch.Result{}, err
	}

	return batch.Result{Inputs: []string{pepPath, fastaPath}, Outputs: []string{outPath}}, nil
}

// Jobs pairs the sorted peptide files in dir with the sorted nucleotide fasta
// files. TransDecoder names its outputs after the transcripts
// (Trinity.fasta.transdecoder.pep), so those are excluded from the fasta list,
// as are earlier outputs.
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Pairs(dir,
		batch.Selector{Marker: PepMarker, Exclude: []string{"_filtered"}},
		batch.Selector{Marker: FastaMarker, Exclude: []string{".transdecoder", PepMarker, "_nuc", "_new", ".fai"}},
		nil)
}
