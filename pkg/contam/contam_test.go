package contam

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/EdRice4/Macrander/pkg/fasta"
)

var fastaData = []byte(`>comp1_c0_seq1 len=8
ACGTACGT
>comp1_c0_seq10 len=4
TTTT
>comp2_c0_seq1
GGGG
`)

func TestReadList(t *testing.T) {
	ids, err := ReadList(bytes.NewReader([]byte("comp1_c0_seq1\r\n\n  comp2_c0_seq1 \n")))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"comp1_c0_seq1", "comp2_c0_seq1"}) {
		t.Errorf("problem in TestReadList(): %v", ids)
	}
}

func TestRemove(t *testing.T) {
	out := new(bytes.Buffer)
	n, err := Remove(bytes.NewReader(fastaData), []string{"comp1_c0_seq1", "not_there"}, out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("wrong number removed in TestRemove(): %d", n)
	}

	// comp1_c0_seq10 shares a prefix with comp1_c0_seq1 but is kept
	desiredResult := ">comp1_c0_seq10 len=4\nTTTT\n>comp2_c0_seq1\nGGGG\n"
	if out.String() != desiredResult {
		t.Errorf("problem in TestRemove():\n%s", out.String())
	}
}

func TestRemoveIdempotent(t *testing.T) {
	ids := []string{"comp1_c0_seq1", "comp2_c0_seq1"}

	first := new(bytes.Buffer)
	if _, err := Remove(bytes.NewReader(fastaData), ids, first); err != nil {
		t.Fatal(err)
	}

	second := new(bytes.Buffer)
	n, err := Remove(bytes.NewReader(first.Bytes()), ids, second)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("wrong number removed on the second pass in TestRemoveIdempotent(): %d", n)
	}
	if second.String() != first.String() {
		t.Errorf("problem in TestRemoveIdempotent():\n%s\n%s", first.String(), second.String())
	}
}

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "spiders.fasta")
	listPath := filepath.Join(dir, "spiders_contaminants.txt")
	if err := os.WriteFile(fastaPath, fastaData, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(listPath, []byte("comp2_c0_seq1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	jobs, err := Jobs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("problem in TestRemoveFile() - Jobs: %v", jobs)
	}

	result, err := RemoveFile(jobs[0].Inputs[0], jobs[0].Inputs[1])
	if err != nil {
		t.Fatal(err)
	}
	if result.Outputs[0] != filepath.Join(dir, "spiders_new.fasta") {
		t.Errorf("wrong output path in TestRemoveFile(): %s", result.Outputs[0])
	}

	b, err := os.ReadFile(result.Outputs[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != ">comp1_c0_seq1 len=8\nACGTACGT\n>comp1_c0_seq10 len=4\nTTTT\n" {
		t.Errorf("problem in TestRemoveFile():\n%s", string(b))
	}

	// the output isn't paired on a second run
	jobs, err = Jobs(dir)
	if err != nil || len(jobs) != 1 {
		t.Errorf("problem in TestRemoveFile() - Jobs after run: %v %v", jobs, err)
	}
}

func TestRemoveFileBadFasta(t *testing.T) {
	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "spiders.fasta")
	listPath := filepath.Join(dir, "spiders_contaminants.txt")
	if err := os.WriteFile(fastaPath, []byte(">a\nACGT\n>a\nTTTT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(listPath, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := RemoveFile(fastaPath, listPath)
	if !errors.Is(err, fasta.ErrDuplicateID) {
		t.Errorf("expected fasta.ErrDuplicateID in TestRemoveFileBadFasta(), got %v", err)
	}
	if _, err = os.Stat(OutputPath(fastaPath)); !os.IsNotExist(err) {
		t.Errorf("problem in TestRemoveFileBadFasta(): output was written")
	}
}
