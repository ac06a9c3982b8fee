/*
Package surrogate maps long sequence identifiers to short random stand-ins, so
that sequences can pass through tools that truncate names, and back again
*/
package surrogate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// Width is the length of a generated surrogate: the classic phylip name limit
const Width = 10

var (
	errDuplicateSurrogate = errors.New("duplicate surrogate ID in dictionary")
	errDuplicateOriginal  = errors.New("duplicate original ID in dictionary")
	errBadDictionaryLine  = errors.New("badly formatted dictionary line")
)

// Pair is one dictionary entry
type Pair struct {
	Surrogate string
	Original  string
}

// Dictionary is an ordered set of surrogate/original pairs. Both columns are unique.
type Dictionary struct {
	pairs      []Pair
	toOriginal map[string]string
	toSurr     map[string]string
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		pairs:      make([]Pair, 0),
		toOriginal: make(map[string]string),
		toSurr:     make(map[string]string),
	}
}

// Add appends a pair, failing if either ID is already present
func (d *Dictionary) Add(surrogate, original string) error {
	if _, ok := d.toOriginal[surrogate]; ok {
		return fmt.Errorf("%w: %s", errDuplicateSurrogate, surrogate)
	}
	if _, ok := d.toSurr[original]; ok {
		return fmt.Errorf("%w: %s", errDuplicateOriginal, original)
	}
	d.pairs = append(d.pairs, Pair{Surrogate: surrogate, Original: original})
	d.toOriginal[surrogate] = original
	d.toSurr[original] = surrogate
	return nil
}

// Original returns the original ID for a surrogate
func (d *Dictionary) Original(surrogate string) (string, bool) {
	o, ok := d.toOriginal[surrogate]
	return o, ok
}

// Surrogate returns the surrogate for an original ID
func (d *Dictionary) Surrogate(original string) (string, bool) {
	s, ok := d.toSurr[original]
	return s, ok
}

// Pairs returns the entries in insertion order
func (d *Dictionary) Pairs() []Pair {
	return d.pairs
}

func (d *Dictionary) Len() int {
	return len(d.pairs)
}

// Generate gives each original ID a unique random Width-digit surrogate, drawing
// from rng
func Generate(originals []string, rng *rand.Rand) (*Dictionary, error) {
	d := NewDictionary()
	limit := int64(1)
	for i := 0; i < Width; i++ {
		limit *= 10
	}
	for _, o := range originals {
		var s string
		for {
			s = fmt.Sprintf("%0*d", Width, rng.Int63n(limit))
			if _, taken := d.toOriginal[s]; !taken {
				break
			}
		}
		if err := d.Add(s, o); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Read parses a tab-delimited dictionary file of surrogate\toriginal lines.
// Blank lines are skipped.
func Read(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	s := bufio.NewScanner(r)
	lineNumber := 0
	for s.Scan() {
		lineNumber++
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("%w (line %d): %q", errBadDictionaryLine, lineNumber, line)
		}
		if err := d.Add(strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Write writes the dictionary as surrogate\toriginal lines
func (d *Dictionary) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range d.pairs {
		if _, err := bw.WriteString(p.Surrogate + "\t" + p.Original + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
