/*
Package fasta reads and writes fasta format files
*/
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	errBadlyFormedFasta = errors.New("badly formed fasta file")
	errEmptyFasta       = errors.New("empty fasta file")
	errDiffLenSeqs      = errors.New("different length sequences in input file: is this an alignment?")
)

// ErrDuplicateID is returned by the loading functions when two records share an ID
var ErrDuplicateID = errors.New("duplicate sequence ID in fasta file")

type Reader struct {
	*bufio.Reader
	counter int
}

func NewReader(f io.Reader) *Reader {
	return &Reader{Reader: bufio.NewReader(f)}
}

// trimNewline strips a unix or dos line ending
func trimNewline(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
	}
	return line
}

// Read reads one fasta record from the underlying reader. The final record is
// returned with error = nil, and the next call to Read() returns an empty Record
// struct and error = io.EOF. Sequence lines are concatenated with their line
// endings removed.
func (r *Reader) Read() (Record, error) {

	var (
		buffer, line, peek []byte
		err                error
		FR                 Record
	)

	// blank lines before a header are tolerated
	for {
		line, err = r.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			return Record{}, err
		}
		line = trimNewline(line)
		if len(bytes.TrimSpace(line)) > 0 {
			break
		}
		if err != nil {
			return Record{}, err
		}
	}

	if line[0] != '>' {
		return Record{}, errBadlyFormedFasta
	}

	fields := bytes.Fields(line[1:])
	if len(fields) == 0 {
		return Record{}, fmt.Errorf("%w: header with no ID", errBadlyFormedFasta)
	}
	FR.ID = string(fields[0])
	FR.Description = string(line[1:])
	FR.Idx = r.counter

	if err == io.EOF {
		r.counter++
		return FR, nil
	}

	for {
		// peek at the next byte to see if we've reached the end of this record (or the file)
		peek, err = r.Peek(1)
		if err == io.EOF || (err == nil && peek[0] == '>') {
			break
		} else if err != nil {
			return Record{}, err
		}

		line, err = r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		buffer = append(buffer, bytes.TrimSpace(line)...)
	}

	FR.Seq = string(buffer)
	r.counter++

	return FR, nil
}

// ReadAll reads every record, in file order. IDs must be unique.
func ReadAll(f io.Reader) ([]Record, error) {
	r := NewReader(f)
	records := make([]Record, 0)
	seen := make(map[string]bool)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if seen[record.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
		}
		seen[record.ID] = true
		records = append(records, record)
	}
	return records, nil
}

// ReadAlignment is as ReadAll but also requires at least one record and that
// every sequence is the same length
func ReadAlignment(f io.Reader) ([]Record, error) {
	records, err := ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errEmptyFasta
	}
	width := len(records[0].Seq)
	for _, record := range records[1:] {
		if len(record.Seq) != width {
			return nil, errDiffLenSeqs
		}
	}
	return records, nil
}

// Write writes records to w with the sequence on a single line
func Write(w io.Writer, records []Record) error {
	return WriteWrap(w, records, 0)
}

// WriteWrap is as Write but with sequence lines wrapped to wrap characters in
// length. A wrap of zero or less means no wrapping. The header written is the
// full Description when one is set, otherwise the ID.
func WriteWrap(w io.Writer, records []Record, wrap int) error {
	bw := bufio.NewWriter(w)
	for _, record := range records {
		header := record.Description
		if header == "" {
			header = record.ID
		}
		if _, err := bw.WriteString(">" + header + "\n"); err != nil {
			return err
		}
		if wrap <= 0 || len(record.Seq) <= wrap {
			if _, err := bw.WriteString(record.Seq + "\n"); err != nil {
				return err
			}
			continue
		}
		for written := 0; written < len(record.Seq); written += wrap {
			end := written + wrap
			if end > len(record.Seq) {
				end = len(record.Seq)
			}
			if _, err := bw.WriteString(record.Seq[written:end] + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
