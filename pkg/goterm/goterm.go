/*
Package goterm combines gene ontology annotations with expression levels: every
GO term of a transcript is tagged with that transcript's share of its TPM, one
output per GO category
*/
package goterm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	errBadlyFormedTable = errors.New("badly formed tab-delimited file")
	errDuplicateID      = errors.New("duplicate transcript ID")
	errMissingTPM       = errors.New("no TPM for annotated transcript")
)

// Category is a GO namespace and the abbreviation used to name its output
type Category struct {
	Name   string
	Abbrev string
}

// Categories in output order
var Categories = []Category{
	{Name: "cellular_component", Abbrev: "CC"},
	{Name: "biological_process", Abbrev: "BP"},
	{Name: "molecular_function", Abbrev: "MF"},
}

// Annotation is the GO terms of one transcript, e.g.
// GO:0005737^cellular_component^cytoplasm
type Annotation struct {
	TranscriptID string
	Terms        []string
}

// Expression maps transcript IDs to TPM
type Expression map[string]float64

// Term is a GO term with the TPM attributed to it
type Term struct {
	Text string
	TPM  float64
}

func (t Term) String() string {
	return t.Text + ":" + strconv.FormatFloat(t.TPM, 'f', -1, 64)
}

// Row is one line of a concatenated output
type Row struct {
	TranscriptID string
	Terms        []Term
}

// Total is the summed TPM of one GO ID across every transcript
type Total struct {
	GOID     string
	Category string
	TPM      float64
}

var goID = regexp.MustCompile(`GO:\d+`)

// tableLines calls fn with the tab-split fields of every non-blank line after
// the header
func tableLines(r io.Reader, fn func(lineNumber int, fields []string) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	lineNumber := 0
	for s.Scan() {
		lineNumber++
		if lineNumber == 1 {
			continue
		}
		line := strings.TrimRight(s.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNumber, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return s.Err()
}

// ReadAnnotations reads a GO file: a header line, then transcript_id and a
// backtick-separated list of terms per line. A transcript with no terms may
// have an empty or "." second column.
func ReadAnnotations(r io.Reader) ([]Annotation, error) {
	annotations := make([]Annotation, 0)
	seen := make(map[string]bool)
	err := tableLines(r, func(lineNumber int, fields []string) error {
		id := strings.TrimSpace(fields[0])
		if id == "" {
			return fmt.Errorf("%w (line %d): no transcript ID", errBadlyFormedTable, lineNumber)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", errDuplicateID, id)
		}
		seen[id] = true

		a := Annotation{TranscriptID: id, Terms: make([]string, 0)}
		if len(fields) > 1 {
			for _, term := range strings.Split(fields[1], "`") {
				term = strings.TrimSpace(term)
				if term != "" && term != "." {
					a.Terms = append(a.Terms, term)
				}
			}
		}
		annotations = append(annotations, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return annotations, nil
}

// ReadExpression reads a TPM file: a header line, then transcript_id and a
// decimal TPM per line
func ReadExpression(r io.Reader) (Expression, error) {
	tpm := make(Expression)
	err := tableLines(r, func(lineNumber int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("%w (line %d): expected transcript_id and TPM", errBadlyFormedTable, lineNumber)
		}
		id := strings.TrimSpace(fields[0])
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return fmt.Errorf("%w (line %d): %v", errBadlyFormedTable, lineNumber, err)
		}
		if _, ok := tpm[id]; ok {
			return fmt.Errorf("%w: %s", errDuplicateID, id)
		}
		tpm[id] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tpm, nil
}

// FilterCategory keeps the terms that contain category, dropping transcripts
// left with none. Order is preserved.
func FilterCategory(annotations []Annotation, category string) []Annotation {
	filtered := make([]Annotation, 0)
	for _, a := range annotations {
		terms := make([]string, 0)
		for _, term := range a.Terms {
			if strings.Contains(term, category) {
				terms = append(terms, term)
			}
		}
		if len(terms) > 0 {
			filtered = append(filtered, Annotation{TranscriptID: a.TranscriptID, Terms: terms})
		}
	}
	return filtered
}

// Concatenate divides each transcript's TPM evenly among its terms
func Concatenate(annotations []Annotation, tpm Expression) ([]Row, error) {
	rows := make([]Row, 0, len(annotations))
	for _, a := range annotations {
		v, ok := tpm[a.TranscriptID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errMissingTPM, a.TranscriptID)
		}
		share := v / float64(len(a.Terms))
		row := Row{TranscriptID: a.TranscriptID, Terms: make([]Term, len(a.Terms))}
		for i, term := range a.Terms {
			row.Terms[i] = Term{Text: term, TPM: share}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write writes rows under a transcript_id, gene_ontology header
func Write(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("transcript_id\tgene_ontology\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := bw.WriteString(row.TranscriptID); err != nil {
			return err
		}
		for _, term := range row.Terms {
			if _, err := bw.WriteString("\t" + term.String()); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// termID is the GO:nnnnnnn part of a term, or the text before the first '^'
// if there isn't one
func termID(text string) string {
	if id := goID.FindString(text); id != "" {
		return id
	}
	return strings.SplitN(text, "^", 2)[0]
}

// Cumulative sums the TPM attributed to each GO ID. rows is keyed by category
// name. Categories are visited in output order; a term that was filtered into
// more than one category is counted once, under the first. Totals are sorted
// by GO ID.
func Cumulative(rows map[string][]Row) []Total {
	totals := make(map[string]Total)
	counted := make(map[[2]string]bool)
	for _, c := range Categories {
		for _, row := range rows[c.Name] {
			for _, term := range row.Terms {
				key := [2]string{row.TranscriptID, term.Text}
				if counted[key] {
					continue
				}
				counted[key] = true

				id := termID(term.Text)
				t, ok := totals[id]
				if !ok {
					t = Total{GOID: id, Category: c.Name}
				}
				t.TPM += term.TPM
				totals[id] = t
			}
		}
	}

	ids := maps.Keys(totals)
	slices.Sort(ids)

	sorted := make([]Total, len(ids))
	for i, id := range ids {
		sorted[i] = totals[id]
	}
	return sorted
}

// WriteCumulative writes totals under a go_id, category, cumulative_tpm header
func WriteCumulative(w io.Writer, totals []Total) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("go_id\tcategory\tcumulative_tpm\n"); err != nil {
		return err
	}
	for _, t := range totals {
		line := t.GOID + "\t" + t.Category + "\t" + strconv.FormatFloat(t.TPM, 'f', -1, 64) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
