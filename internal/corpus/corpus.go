// Package corpus opens the raw input files the extraction pipelines read:
// flat compressed dumps (ConceptNet assertion CSVs, Wikipedia XML exports)
// and treebank tarballs. Compression is detected from the file name.
package corpus

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/lexigame/wordmine/core/errors"
)

// Stream is a decompressed view of one input file.
type Stream struct {
	io.Reader
	file         *os.File
	decompressor io.Closer
}

// Open opens a dump file for streaming. Files ending in .gz, .bz2 or .xz
// are decompressed transparently; anything else is read as-is.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("dump", path)
		}
		return nil, errors.NewIO("open", path, err)
	}

	var reader io.Reader = f
	var decompressor io.Closer

	switch {
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		reader = gzr
		decompressor = gzr
	case strings.HasSuffix(path, ".bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		reader = xzr
	}

	return &Stream{
		Reader:       reader,
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the stream and any underlying decompressor.
func (s *Stream) Close() error {
	var errs []error
	if s.decompressor != nil {
		if err := s.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Visitor is a callback for iterating tarball members. Return true to stop
// iteration, false to continue.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Tarball wraps a tar.Reader over a compressed treebank archive.
type Tarball struct {
	*tar.Reader
	stream *Stream
}

// OpenTarball opens a .tgz, .tar.gz or .tar.xz archive for member
// iteration.
func OpenTarball(path string) (*Tarball, error) {
	switch {
	case strings.HasSuffix(path, ".tgz"),
		strings.HasSuffix(path, ".tar.gz"),
		strings.HasSuffix(path, ".tar.xz"),
		strings.HasSuffix(path, ".tar.bz2"),
		strings.HasSuffix(path, ".tar"):
	default:
		return nil, errors.NewUnsupported("archive format", path)
	}

	stream, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Tarball{
		Reader: tar.NewReader(stream),
		stream: stream,
	}, nil
}

// Close closes the underlying stream.
func (t *Tarball) Close() error {
	return t.stream.Close()
}

// Iterate walks every regular file in the tarball, calling the visitor for
// each.
func (t *Tarball) Iterate(visitor Visitor) error {
	for {
		header, err := t.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read tar header")
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		stop, err := visitor(header, t)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// IterateTarball opens an archive and iterates through its regular files.
func IterateTarball(path string, visitor Visitor) error {
	t, err := OpenTarball(path)
	if err != nil {
		return err
	}
	defer t.Close()
	return t.Iterate(visitor)
}
