// Package source turns mirrored artifact bytes into the form their open
// checksum describes.
package source

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrUnsupportedCompression is returned for formats this package cannot
// inflate. The stored bytes can still be verified.
var ErrUnsupportedCompression = errors.New("unsupported compression")

type Compression string

const (
	None   Compression = "none"
	Gzip   Compression = "gz"
	Bzip2  Compression = "bz2"
	XZ     Compression = "xz"
	Zstd   Compression = "zst"
	Zchunk Compression = "zck"
)

// CompressionFor picks the compression from the location suffix, the way
// createrepo names its output.
func CompressionFor(location string) Compression {
	i := strings.LastIndexByte(location, '.')
	if i < 0 {
		return None
	}
	switch Compression(location[i+1:]) {
	case Gzip:
		return Gzip
	case Bzip2:
		return Bzip2
	case XZ:
		return XZ
	case Zstd:
		return Zstd
	case Zchunk:
		return Zchunk
	}
	return None
}

// Decompress returns the open form of an artifact stored at location.
// Uncompressed artifacts are returned as-is. When limit is positive at most
// limit+1 bytes are produced, so an oversized stream still fails the
// open-size check without being inflated in full.
func Decompress(location string, data []byte, limit uint64) ([]byte, error) {
	c := CompressionFor(location)
	r, closer, err := reader(c, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", location, err)
	}
	if closer != nil {
		defer closer()
	}
	if r == nil {
		return data, nil
	}
	if limit > 0 {
		n := int64(math.MaxInt64)
		if limit < math.MaxInt64 {
			n = int64(limit) + 1
		}
		r = io.LimitReader(r, n)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", location, err)
	}
	return out, nil
}

func reader(c Compression, src io.Reader) (io.Reader, func(), error) {
	switch c {
	case None:
		return nil, nil, nil
	case Gzip:
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case Bzip2:
		return bzip2.NewReader(src), nil, nil
	case XZ:
		xr, err := xz.NewReader(src)
		if err != nil {
			return nil, nil, err
		}
		return xr, nil, nil
	case Zstd:
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	}
	return nil, nil, fmt.Errorf("%w %q", ErrUnsupportedCompression, c)
}
