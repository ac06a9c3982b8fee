package motif

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const shkPeptide = "CAAACBBCAAAAAAAAAAAAAAAAAAAACDDDCEEC"

func TestScan(t *testing.T) {
	domains, err := Scan(shkPeptide)
	if err != nil {
		t.Fatal(err)
	}
	want := []Domain{{Start: 1, End: len(shkPeptide), Seq: shkPeptide}}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("problem in TestScan(): %v", domains)
	}

	domains, err = Scan("MKT" + strings.ToLower(shkPeptide) + "GG*")
	if err != nil {
		t.Fatal(err)
	}
	want = []Domain{{Start: 4, End: 3 + len(shkPeptide), Seq: shkPeptide}}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("problem in TestScan() - lower case: %v", domains)
	}
}

func TestScanMissingCysteine(t *testing.T) {
	for i := 0; i < len(shkPeptide); i++ {
		if shkPeptide[i] != 'C' {
			continue
		}
		seq := shkPeptide[:i] + shkPeptide[i+1:]
		ok, err := Contains(seq)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("match without the cysteine at position %d: %s", i+1, seq)
		}
	}
}

func TestScanSpacing(t *testing.T) {
	// 51 residues between the third and fourth cysteines is too many
	seq := "CAACAAC" + strings.Repeat("A", 51) + "CAAACAAC"
	ok, err := Contains(seq)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("problem in TestScanSpacing() - 51 residues matched")
	}

	seq = "CAACAAC" + strings.Repeat("A", 50) + "CAAACAAC"
	ok, err = Contains(seq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("problem in TestScanSpacing() - 50 residues did not match")
	}
}

func TestScanInvalid(t *testing.T) {
	if _, err := Scan("CAAAC1BCAAAC"); err == nil {
		t.Errorf("expected an error for a digit")
	}
	if _, err := Scan("CAA*ACC"); err == nil {
		t.Errorf("expected an error for an internal stop")
	}
}

func TestMark(t *testing.T) {
	seq := "MK" + shkPeptide + "GG"
	domains, err := Scan(seq)
	if err != nil {
		t.Fatal(err)
	}
	if got := Mark(seq, domains); got != "MK|"+shkPeptide+"|GG" {
		t.Errorf("problem in TestMark(): %s", got)
	}

	domains = []Domain{{Start: 2, End: 3}, {Start: 5, End: 5}}
	if got := Mark("ABCDEF", domains); got != "A|BC|D|E|F" {
		t.Errorf("problem in TestMark() - two domains: %s", got)
	}
}

func TestScanGreedy(t *testing.T) {
	// the open-ended spacers are greedy, so back to back domains are one match
	seq := shkPeptide + "GG" + shkPeptide
	domains, err := Scan(seq)
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 1 || domains[0].Start != 1 || domains[0].End != len(seq) {
		t.Errorf("problem in TestScanGreedy(): %v", domains)
	}
}

func TestFilter(t *testing.T) {
	pepData := []byte(`>Gene.1::comp1_c0_seq1::g.1::m.1 type:complete len:41
MKG` + shkPeptide + `*
>Gene.2::comp2_c0_seq1::g.2::m.2 type:complete len:10
MKVLAAGGT*
`)

	out := new(bytes.Buffer)
	report := new(bytes.Buffer)
	n, err := Filter(bytes.NewReader(pepData), out, report)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("wrong number kept in TestFilter(): %d", n)
	}

	desiredOut := ">Gene.1::comp1_c0_seq1::g.1::m.1 type:complete len:41\nMKG" + shkPeptide + "*\n"
	if out.String() != desiredOut {
		t.Errorf("problem in TestFilter() - fasta:\n%s", out.String())
	}

	desiredReport := "peptide_id\tstart\tend\tdomain\nGene.1::comp1_c0_seq1::g.1::m.1\t4\t39\t" + shkPeptide + "\n"
	if report.String() != desiredReport {
		t.Errorf("problem in TestFilter() - report:\n%s", report.String())
	}

	// running again on the output gives the same output
	again := new(bytes.Buffer)
	if _, err = Filter(bytes.NewReader(out.Bytes()), again, new(bytes.Buffer)); err != nil {
		t.Fatal(err)
	}
	if again.String() != out.String() {
		t.Errorf("problem in TestFilter() - not idempotent:\n%s", again.String())
	}
}

func TestFilterFile(t *testing.T) {
	dir := t.TempDir()
	pep := filepath.Join(dir, "Trinity.fasta.transdecoder.pep")
	if err := os.WriteFile(pep, []byte(">p1\n"+shkPeptide+"\n>p2\nMKV\n"), 0644); err != nil {
		t.Fatal(err)
	}

	jobs, err := Jobs(dir)
	if err != nil {
		t.Fatal(err)
	}
	result, err := FilterFile(jobs[0].Inputs[0])
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "Trinity.fasta.transdecoder_filtered.pep"),
		filepath.Join(dir, "Trinity.fasta.transdecoder_ShK.tsv"),
	}
	if !reflect.DeepEqual(result.Outputs, want) {
		t.Errorf("problem in TestFilterFile(): %v", result.Outputs)
	}

	b, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != ">p1\n"+shkPeptide+"\n" {
		t.Errorf("problem in TestFilterFile() - output:\n%s", string(b))
	}

	jobs, err = Jobs(dir)
	if err != nil || len(jobs) != 1 {
		t.Errorf("problem in TestFilterFile() - Jobs after run: %v %v", jobs, err)
	}
}

func TestFilterFileInvalid(t *testing.T) {
	dir := t.TempDir()
	pep := filepath.Join(dir, "a.pep")
	// the bad peptide comes after one that matches
	if err := os.WriteFile(pep, []byte(">p1\n"+shkPeptide+"\n>p2\nCAA*ACC\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := FilterFile(pep); err == nil {
		t.Fatal("expected an error from TestFilterFileInvalid()")
	}
	filtered, report := OutputPaths(pep)
	for _, p := range []string{filtered, report} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("problem in TestFilterFileInvalid(): %s was written", p)
		}
	}
}
