package phylip

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/fasta"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/surrogate"
)

// FastaMarker is the naming convention for fasta inputs
const FastaMarker = ".fasta"

var errUnknownSurrogate = errors.New("sequence name not found in dictionary")

// Options control a fasta to phylip conversion
type Options struct {
	Sequential bool
	Width      int
	Rand       *rand.Rand
}

func (o Options) write(w io.Writer, records []fasta.Record) error {
	if o.Sequential {
		return WriteSequential(w, records)
	}
	width := o.Width
	if width == 0 {
		width = DefaultWidth
	}
	return WriteInterleaved(w, records, width)
}

// conversion is a validated alignment and its surrogate names
type conversion struct {
	records []fasta.Record
	renamed []fasta.Record
	dict    *surrogate.Dictionary
}

func newConversion(in io.Reader, rng *rand.Rand) (conversion, error) {
	records, err := fasta.ReadAlignment(in)
	if err != nil {
		return conversion{}, err
	}

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	d, err := surrogate.Generate(ids, rng)
	if err != nil {
		return conversion{}, err
	}

	renamed := make([]fasta.Record, len(records))
	for i, r := range records {
		s, _ := d.Surrogate(r.ID)
		renamed[i] = fasta.Record{ID: s, Seq: r.Seq, Idx: r.Idx}
	}
	return conversion{records: records, renamed: renamed, dict: d}, nil
}

func (c conversion) write(original, unique, dict io.Writer, opts Options) error {
	if err := opts.write(original, c.records); err != nil {
		return err
	}
	if err := opts.write(unique, c.renamed); err != nil {
		return err
	}
	return c.dict.Write(dict)
}

// FromFasta reads an alignment in fasta format and writes it as phylip twice:
// once with its own names (original) and once with surrogate names (unique).
// The surrogate dictionary is written to dict.
func FromFasta(in io.Reader, original, unique, dict io.Writer, opts Options) error {
	c, err := newConversion(in, opts.Rand)
	if err != nil {
		return err
	}
	return c.write(original, unique, dict, opts)
}

// ToFasta converts a phylip file to fasta. If dict is not nil, every name is
// treated as a surrogate and replaced with its original.
func ToFasta(in io.Reader, dict *surrogate.Dictionary, out io.Writer) error {
	records, err := Read(in)
	if err != nil {
		return err
	}
	if dict != nil {
		for i := range records {
			o, ok := dict.Original(records[i].ID)
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownSurrogate, records[i].ID)
			}
			records[i].ID = o
		}
	}
	return fasta.Write(out, records)
}

// OutputPaths are the files written for one fasta input
func OutputPaths(fastaPath string) (original, unique, dict string) {
	original = batch.DerivePath(fastaPath, FastaMarker, "_original.phylip")
	unique = batch.DerivePath(fastaPath, FastaMarker, "_unique.phylip")
	dict = batch.DerivePath(fastaPath, FastaMarker, ".txt")
	return
}

// ConvertFile converts one fasta file, writing <base>_original.phylip,
// <base>_unique.phylip and the <base>.txt dictionary next to it. Nothing is
// written if the fasta isn't a valid alignment.
func ConvertFile(fastaPath string, opts Options) (batch.Result, error) {
	in, err := gfio.Open(fastaPath)
	if err != nil {
		return batch.Result{}, err
	}
	c, err := newConversion(in, opts.Rand)
	in.Close()
	if err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", fastaPath, err)
	}

	originalPath, uniquePath, dictPath := OutputPaths(fastaPath)
	outputs := []string{originalPath, uniquePath, dictPath}

	files := make([]*os.File, 0, len(outputs))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, p := range outputs {
		f, err := os.Create(p)
		if err != nil {
			return batch.Result{}, err
		}
		files = append(files, f)
	}

	if err = c.write(files[0], files[1], files[2], opts); err != nil {
		return batch.Result{}, fmt.Errorf("%s: %w", fastaPath, err)
	}

	for _, f := range files {
		if err = f.Close(); err != nil {
			return batch.Result{}, err
		}
	}
	files = files[:0]

	return batch.Result{Inputs: []string{fastaPath}, Outputs: outputs}, nil
}

// Jobs finds the fasta files in dir. Files that aren't fasta but contain the
// marker, such as this package's own outputs, are skipped.
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Singles(dir, batch.Selector{Marker: FastaMarker, Exclude: []string{"_new.fasta", "_nuc.fasta", ".transdecoder", ".fai"}})
}
