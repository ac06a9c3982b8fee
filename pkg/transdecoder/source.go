package transdecoder

import (
	"fmt"
	"io"

	"github.com/biogo/hts/fai"
	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/fasta"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/logger"
)

// MemorySource holds every transcript in memory, keyed by ID
type MemorySource map[string]string

// NewMemorySource loads a nucleotide fasta file
func NewMemorySource(r io.Reader) (MemorySource, error) {
	records, err := fasta.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m := make(MemorySource, len(records))
	for _, record := range records {
		m[record.ID] = record.Seq
	}
	return m, nil
}

func (m MemorySource) Subseq(name string, lo, hi int) (string, error) {
	seq, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingTranscript, name)
	}
	if lo < 0 || hi > len(seq) {
		return "", fmt.Errorf("%w (length %d)", errOutOfRange, len(seq))
	}
	return seq[lo:hi], nil
}

// IndexedSource reads transcripts from a seekable fasta file through a fai
// index, so only the requested regions are held in memory
type IndexedSource struct {
	idx  fai.Index
	file *fai.File
}

// readSeekerAt is satisfied by *os.File
type readSeekerAt interface {
	io.ReadSeeker
	io.ReaderAt
}

// NewIndexedSource indexes the fasta in r. Indexing fails unless every record
// has a regular line length.
func NewIndexedSource(r readSeekerAt) (*IndexedSource, error) {
	idx, err := fai.NewIndex(r)
	if err != nil {
		return nil, err
	}
	return &IndexedSource{idx: idx, file: fai.NewFile(r, idx)}, nil
}

func (s *IndexedSource) Subseq(name string, lo, hi int) (string, error) {
	rec, ok := s.idx[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingTranscript, name)
	}
	if lo < 0 || hi > rec.Length {
		return "", fmt.Errorf("%w (length %d)", errOutOfRange, rec.Length)
	}
	seq, err := s.file.SeqRange(name, lo, hi)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(seq)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// OpenSource opens the nucleotide fasta at path. Plain files are indexed where
// possible; compressed or irregularly wrapped files are read into memory. The
// returned closer must be closed when the source is no longer needed.
func OpenSource(path string) (Source, io.Closer, error) {
	rc, err := gfio.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if rs, ok := rc.(readSeekerAt); ok {
		src, err := NewIndexedSource(rs)
		if err == nil {
			logger.Debug("indexed nucleotide fasta", zap.String("file", path))
			return src, rc, nil
		}
		logger.Debug("could not index nucleotide fasta, reading into memory",
			zap.String("file", path),
			zap.Error(err))
		if _, err = rs.Seek(0, io.SeekStart); err != nil {
			rc.Close()
			return nil, nil, err
		}
	}

	src, err := NewMemorySource(rc)
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, rc, nil
}
