/*
Package gfio provides io functionality, including to/from stdin/stdout,
transparent reading of gzip and bgzf compressed files, and helpful error
messages when used in combination with bad filepaths from commandline options
*/
package gfio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/pgzip"
	"github.com/spf13/pflag"
)

func parseInErr(err error, flagString string) error {
	switch x := err.(type) {
	case *fs.PathError:
		return errors.New(x.Op + " " + flagString + " " + x.Path + ": " + x.Err.Error())
	default:
		return err
	}
}

func flagString(flag pflag.Flag) string {
	switch len(flag.Shorthand) {
	case 0:
		return "--" + flag.Name
	default:
		return "--" + flag.Name + " / -" + flag.Shorthand
	}
}

// OpenIn opens the file named by flag's value for reading, decompressing it if
// necessary. "stdin" reads from standard input.
func OpenIn(flag pflag.Flag) (io.ReadCloser, error) {
	inFile := flag.Value.String()

	if inFile == "stdin" {
		return decompressStream(os.Stdin)
	}

	rc, err := Open(inFile)
	if err != nil {
		return nil, parseInErr(err, flagString(flag))
	}
	return rc, nil
}

// OpenOut creates the file named by flag's value. "stdout" writes to standard output.
func OpenOut(flag pflag.Flag) (io.WriteCloser, error) {
	outFile := flag.Value.String()

	if outFile == "stdout" {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(outFile)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// readCloser closes the decompressor and then the underlying file
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc readCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

const headerLen = 18

var gzipMagic = []byte{0x1f, 0x8b}

func isGzip(header []byte) bool {
	return len(header) >= 2 && bytes.Equal(header[:2], gzipMagic)
}

// isBGZF checks for the "BC" extra subfield that marks a gzip member as a bgzf block
func isBGZF(header []byte) bool {
	return isGzip(header) &&
		len(header) >= headerLen &&
		header[3]&0x04 != 0 &&
		header[12] == 'B' && header[13] == 'C'
}

// Open opens the named file for reading. Plain files are returned as the
// *os.File itself, so callers may type assert to io.ReadSeeker. gzip and bgzf
// files are decompressed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, headerLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, err
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	rc, err := decompress(f, f, header[:n])
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

func decompressStream(f *os.File) (io.ReadCloser, error) {
	br := bufio.NewReader(f)
	header, err := br.Peek(headerLen)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return decompress(br, f, header)
}

func decompress(r io.Reader, f *os.File, header []byte) (io.ReadCloser, error) {
	switch {
	case isBGZF(header):
		bg, err := bgzf.NewReader(r, 1)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: bg, closers: []io.Closer{bg, f}}, nil
	case isGzip(header):
		gz, err := pgzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	}
	if br, ok := r.(*bufio.Reader); ok {
		return readCloser{Reader: br, closers: []io.Closer{f}}, nil
	}
	return f, nil
}
