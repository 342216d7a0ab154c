package binary

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/opnet-network/indexer/errs"
)

// gzipMagic is the two leading bytes ("1f 8b") of a GZIP stream. Both
// deployed bytecode and call data may arrive gzip-prefixed.
var gzipMagic = [2]byte{0x1f, 0x8b}

func IsGzipped(b []byte) bool {
	return len(b) >= 2 && b[0] == gzipMagic[0] && b[1] == gzipMagic[1]
}

// DecompressBounded inflates a GZIP stream, refusing to produce more than
// maxSize bytes of output. A truncated stream or one that would exceed
// maxSize both fail with InvalidCompressedData (ParseError). If b is not
// GZIP-prefixed it is returned unchanged.
func DecompressBounded(b []byte, maxSize int) ([]byte, error) {
	if !IsGzipped(b) {
		return b, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "invalid compressed data", err)
	}
	defer zr.Close()

	limited := io.LimitReader(zr, int64(maxSize)+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "invalid compressed data", err)
	}
	if len(out) > maxSize {
		return nil, errs.Wrap(errs.KindParse, "decompressed output exceeds bound", nil)
	}
	return out, nil
}
