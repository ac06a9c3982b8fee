package phylip

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EdRice4/Macrander/pkg/surrogate"
)

var alignmentData = []byte(`>Grammostola_rosea_comp1_c0_seq1
ACGTACGTAC
GTAC
>Grammostola_rosea_comp2_c0_seq1
TTTTGGGGCC
AAAA
`)

func TestFromFasta(t *testing.T) {
	original := new(bytes.Buffer)
	unique := new(bytes.Buffer)
	dict := new(bytes.Buffer)

	err := FromFasta(bytes.NewReader(alignmentData), original, unique, dict, Options{Sequential: true, Rand: rand.New(rand.NewSource(7))})
	if err != nil {
		t.Fatal(err)
	}

	desiredOriginal := "Grammostola_rosea_comp1_c0_seq1\tACGTACGTACGTAC\nGrammostola_rosea_comp2_c0_seq1\tTTTTGGGGCCAAAA\n"
	if original.String() != desiredOriginal {
		t.Errorf("problem in TestFromFasta() - original:\n%s", original.String())
	}

	d, err := surrogate.Read(bytes.NewReader(dict.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Fatalf("wrong dictionary size in TestFromFasta(): %d", d.Len())
	}

	pairs := d.Pairs()
	desiredUnique := pairs[0].Surrogate + "\tACGTACGTACGTAC\n" + pairs[1].Surrogate + "\tTTTTGGGGCCAAAA\n"
	if unique.String() != desiredUnique {
		t.Errorf("problem in TestFromFasta() - unique:\n%s", unique.String())
	}
	if pairs[0].Original != "Grammostola_rosea_comp1_c0_seq1" || pairs[1].Original != "Grammostola_rosea_comp2_c0_seq1" {
		t.Errorf("problem in TestFromFasta() - dictionary order")
	}
}

func TestFromFastaUnaligned(t *testing.T) {
	data := []byte(">a\nACGT\n>b\nACG\n")
	err := FromFasta(bytes.NewReader(data), new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer), Options{Rand: rand.New(rand.NewSource(1))})
	if err == nil || err.Error() != "different length sequences in input file: is this an alignment?" {
		t.Errorf("expected the alignment error, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, opts := range []Options{
		{Sequential: true, Rand: rand.New(rand.NewSource(3))},
		{Width: 4, Rand: rand.New(rand.NewSource(3))},
	} {
		original := new(bytes.Buffer)
		unique := new(bytes.Buffer)
		dict := new(bytes.Buffer)
		if err := FromFasta(bytes.NewReader(alignmentData), original, unique, dict, opts); err != nil {
			t.Fatal(err)
		}

		d, err := surrogate.Read(dict)
		if err != nil {
			t.Fatal(err)
		}

		desiredResult := ">Grammostola_rosea_comp1_c0_seq1\nACGTACGTACGTAC\n>Grammostola_rosea_comp2_c0_seq1\nTTTTGGGGCCAAAA\n"

		out := new(bytes.Buffer)
		if err = ToFasta(unique, d, out); err != nil {
			t.Fatal(err)
		}
		if out.String() != desiredResult {
			t.Errorf("problem in TestRoundTrip() - unique:\n%s", out.String())
		}

		out.Reset()
		if err = ToFasta(original, nil, out); err != nil {
			t.Fatal(err)
		}
		if out.String() != desiredResult {
			t.Errorf("problem in TestRoundTrip() - original:\n%s", out.String())
		}
	}
}

func TestToFastaUnknownSurrogate(t *testing.T) {
	d := surrogate.NewDictionary()
	if err := d.Add("0000000001", "A"); err != nil {
		t.Fatal(err)
	}
	err := ToFasta(strings.NewReader("0000000002\tACGT\n"), d, new(bytes.Buffer))
	if !errors.Is(err, errUnknownSurrogate) {
		t.Errorf("expected errUnknownSurrogate, got %v", err)
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spiders.fasta")
	if err := os.WriteFile(in, alignmentData, 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ConvertFile(in, Options{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "spiders_original.phylip"),
		filepath.Join(dir, "spiders_unique.phylip"),
		filepath.Join(dir, "spiders.txt"),
	}
	for i, p := range want {
		if result.Outputs[i] != p {
			t.Errorf("wrong output path in TestConvertFile(): %s", result.Outputs[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}

	// outputs aren't picked up as inputs by a second batch run
	jobs, err := Jobs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Inputs[0] != in {
		t.Errorf("problem in TestConvertFile() - Jobs: %v", jobs)
	}
}

func TestConvertFileUnaligned(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spiders.fasta")
	if err := os.WriteFile(in, []byte(">a\nACGT\n>b\nACG\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ConvertFile(in, Options{Rand: rand.New(rand.NewSource(1))})
	if err == nil {
		t.Fatal("expected an error from TestConvertFileUnaligned()")
	}

	original, unique, dict := OutputPaths(in)
	for _, p := range []string{original, unique, dict} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("problem in TestConvertFileUnaligned(): %s was written", p)
		}
	}
}
