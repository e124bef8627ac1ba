package pkgarchive

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.trai.ch/zerr"
)

// openTar wraps r in the decompressor implied by path's extension and
// returns a tar.Reader over the result, plus a closer to release any
// decompressor-held resources.
func openTar(path string, r io.Reader) (*tar.Reader, func() error, error) {
	switch {
	case hasAnySuffix(path, ".gz", ".tgz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, zerr.Wrap(err, "failed to open gzip archive")
		}
		return tar.NewReader(gz), gz.Close, nil

	case hasAnySuffix(path, ".bz2", ".tbz2", ".tbz"):
		return tar.NewReader(bzip2.NewReader(r)), noop, nil

	case hasAnySuffix(path, ".zst", ".tzst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, zerr.Wrap(err, "failed to open zstd archive")
		}
		return tar.NewReader(zr), func() error { zr.Close(); return nil }, nil

	case hasAnySuffix(path, ".xz", ".txz"):
		return nil, nil, zerr.New("xz-compressed package archives are not supported")

	default:
		return tar.NewReader(r), noop, nil
	}
}

func hasAnySuffix(path string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

func noop() error { return nil }
