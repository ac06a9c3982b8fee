package phylip

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/EdRice4/Macrander/pkg/fasta"
)

func TestWriteSequential(t *testing.T) {
	records := []fasta.Record{{ID: "seq1", Seq: "ACGT"}, {ID: "seq2", Seq: "TTTT"}}

	out := new(bytes.Buffer)
	if err := WriteSequential(out, records); err != nil {
		t.Error(err)
	}

	if out.String() != "seq1\tACGT\nseq2\tTTTT\n" {
		t.Errorf("problem in TestWriteSequential()")
	}
}

func TestWriteInterleaved(t *testing.T) {
	records := []fasta.Record{{ID: "a", Seq: "ACGTACGTAC"}, {ID: "b", Seq: "TTTTGGGGCC"}}

	out := new(bytes.Buffer)
	if err := WriteInterleaved(out, records, 4); err != nil {
		t.Error(err)
	}

	desiredResult := `a	ACGT
b	TTTT

ACGT
GGGG

AC
CC

`
	if out.String() != desiredResult {
		t.Errorf("problem in TestWriteInterleaved():\n%s", out.String())
	}

	if err := WriteInterleaved(out, records, 0); err == nil {
		t.Errorf("expected an error for a zero block width")
	}
}

func TestWriteInterleavedDefaultWidth(t *testing.T) {
	seq := strings.Repeat("A", 120)
	records := []fasta.Record{{ID: "x", Seq: seq}, {ID: "y", Seq: seq}}

	out := new(bytes.Buffer)
	if err := WriteInterleaved(out, records, DefaultWidth); err != nil {
		t.Fatal(err)
	}

	blocks := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	for _, line := range strings.Split(blocks[0], "\n") {
		if len(strings.SplitN(line, "\t", 2)[1]) != 50 {
			t.Errorf("first block line is not 50 columns: %q", line)
		}
	}
	for _, line := range strings.Split(blocks[1], "\n") {
		if len(line) != 50 {
			t.Errorf("second block line is not 50 columns: %q", line)
		}
	}
	for _, line := range strings.Split(blocks[2], "\n") {
		if len(line) != 20 {
			t.Errorf("last block line is not 20 columns: %q", line)
		}
	}
}

func TestRead(t *testing.T) {
	sequential := "seq1\tACGT\nseq2\tTTTT\n"
	interleaved := `2 10
a	ACGT
b	TTTT

ACGT
GGGG

AC
CC

`

	records, err := Read(bytes.NewReader([]byte(sequential)))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].ID != "seq1" || records[1].Seq != "TTTT" {
		t.Errorf("problem in TestRead() - sequential: %v", records)
	}

	records, err = Read(bytes.NewReader([]byte(interleaved)))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("wrong number of records in TestRead(): %d", len(records))
	}
	if records[0].ID != "a" || records[0].Seq != "ACGTACGTAC" {
		t.Errorf("problem in TestRead() - interleaved: %v", records[0])
	}
	if records[1].ID != "b" || records[1].Seq != "TTTTGGGGCC" {
		t.Errorf("problem in TestRead() - interleaved: %v", records[1])
	}
}

func TestReadErrors(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("")))
	if !errors.Is(err, errEmptyPhylip) {
		t.Errorf("expected errEmptyPhylip, got %v", err)
	}

	_, err = Read(bytes.NewReader([]byte("seq1 ACGT\n")))
	if !errors.Is(err, errBadlyFormedPhylip) {
		t.Errorf("expected errBadlyFormedPhylip, got %v", err)
	}

	_, err = Read(bytes.NewReader([]byte("a\tAC\nb\tTT\n\nGG\n\n")))
	if !errors.Is(err, errBlockSize) {
		t.Errorf("expected errBlockSize, got %v", err)
	}

	_, err = Read(bytes.NewReader([]byte("a\tAC\nb\tTT\n\nGG\nCC\nAA\n")))
	if !errors.Is(err, errBlockSize) {
		t.Errorf("expected errBlockSize, got %v", err)
	}
}
