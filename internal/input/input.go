// Package input opens grid sources for the zinc binaries. Compressed
// sources are decompressed transparently.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path (or stdin for "-") for reading. Gzip and zstd streams
// are detected by extension (.gz, .zst) or, failing that, by magic bytes.
func Open(path string) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == Stdin || path == "" {
		f = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f = file
	}

	rc, err := Decompress(f, filepath.Ext(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return rc, nil
}

// Decompress wraps r in a decompressor chosen by ext, or by sniffing the
// first bytes when ext names no compression. Closing the result closes r.
func Decompress(r io.ReadCloser, ext string) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	switch strings.ToLower(ext) {
	case ".gz", ".gzip":
		return newGzip(br, r)
	case ".zst", ".zstd":
		return newZstd(br, r)
	}

	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return newGzip(br, r)
	case bytes.HasPrefix(head, zstdMagic):
		return newZstd(br, r)
	}
	return readCloser{Reader: br, closers: []io.Closer{r}}, nil
}

// ReadAll opens path and returns its decompressed text.
func ReadAll(path string) (string, error) {
	rc, err := Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func newGzip(br *bufio.Reader, under io.Closer) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return readCloser{Reader: zr, closers: []io.Closer{zr, under}}, nil
}

func newZstd(br *bufio.Reader, under io.Closer) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return readCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), under}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
