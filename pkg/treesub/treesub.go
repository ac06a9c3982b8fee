/*
Package treesub puts original sequence names back into newick trees (or any
other text) written from surrogate-named alignments
*/
package treesub

import (
	"io"
	"os"
	"regexp"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/surrogate"
)

const (
	TreeMarker = ".tre"
	DictMarker = ".txt"
)

// a token is anything between whitespace and newick punctuation
var token = regexp.MustCompile(`[^\s(),:;\[\]'"]+`)

// Substitute replaces every token in tree that is a surrogate in dict with its
// original. A token that merely contains a surrogate is left alone.
func Substitute(tree string, dict *surrogate.Dictionary) string {
	return token.ReplaceAllStringFunc(tree, func(t string) string {
		if o, ok := dict.Original(t); ok {
			return o
		}
		return t
	})
}

// Rewrite copies in to out with surrogates substituted
func Rewrite(in io.Reader, dict *surrogate.Dictionary, out io.Writer) error {
	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, Substitute(string(b), dict))
	return err
}

// ReadDictionary loads a surrogate dictionary from a file
func ReadDictionary(path string) (*surrogate.Dictionary, error) {
	f, err := gfio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return surrogate.Read(f)
}

// OutputPath is where the substituted copy of treePath is written by default
func OutputPath(treePath string) string {
	return batch.DerivePath(treePath, TreeMarker, "_subbed.tre")
}

// SubstituteFile substitutes the tree at treePath using the dictionary at
// dictPath and writes the result to outPath
func SubstituteFile(treePath, dictPath, outPath string) (batch.Result, error) {
	dict, err := ReadDictionary(dictPath)
	if err != nil {
		return batch.Result{}, err
	}

	in, err := gfio.Open(treePath)
	if err != nil {
		return batch.Result{}, err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return batch.Result{}, err
	}
	defer out.Close()

	if err = Rewrite(in, dict, out); err != nil {
		return batch.Result{}, err
	}
	if err = out.Close(); err != nil {
		return batch.Result{}, err
	}

	return batch.Result{Inputs: []string{treePath, dictPath}, Outputs: []string{outPath}}, nil
}

// Jobs pairs each tree in dir with the dictionary of the same stem
func Jobs(dir string) ([]batch.Job, error) {
	return batch.Pairs(dir,
		batch.Selector{Marker: TreeMarker, Exclude: []string{"_subbed"}},
		batch.Selector{Marker: DictMarker, Exclude: []string{"_GO", "_TPM", "_CC", "_BP", "_MF", "_CUM"}},
		batch.TrimMarker)
}
