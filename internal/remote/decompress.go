package remote

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Encodings understood by Decompress, in Accept-Encoding preference order.
const (
	EncodingZstd = "zstd"
	EncodingGzip = "gzip"
)

// EncodingForPath guesses a content encoding from a file extension.
func EncodingForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return EncodingZstd
	case ".gz":
		return EncodingGzip
	}
	return ""
}

// Decompress wraps r in a decoder for encoding. An empty encoding or
// "identity" returns r unchanged. The caller closes the result.
func Decompress(r io.Reader, encoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return io.NopCloser(r), nil
	case EncodingZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case EncodingGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gz, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}
