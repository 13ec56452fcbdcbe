package source

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/hupe1980/fpstore/blobstore"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Open resolves ref through router and returns a reader over the
// decompressed corpus contents.
func Open(ctx context.Context, router *blobstore.Router, ref Ref) (io.ReadCloser, error) {
	blob, err := router.Open(ctx, ref.Locator)
	if err != nil {
		return nil, fmt.Errorf("open corpus %q: %w", ref.Locator, err)
	}

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("read corpus %q: %w", ref.Locator, err)
	}

	var (
		r      io.Reader = raw
		verify *verifyingReader
	)
	if ref.Checksum != "" {
		want, err := hex.DecodeString(ref.Checksum)
		if err != nil || len(want) != 32 {
			_ = raw.Close()
			_ = blob.Close()
			return nil, fmt.Errorf("%w: invalid checksum %q", ErrChecksumMismatch, ref.Checksum)
		}
		verify = &verifyingReader{r: raw, h: blake3.New(), want: want}
		r = verify
	}

	dr, closeDecoder, err := decompress(ref.Locator, r)
	if err != nil {
		_ = raw.Close()
		_ = blob.Close()
		return nil, fmt.Errorf("decompress corpus %q: %w", ref.Locator, err)
	}

	return &corpusReader{
		r:      dr,
		verify: verify,
		closers: []func() error{
			closeDecoder,
			raw.Close,
			blob.Close,
		},
	}, nil
}

// Checksum returns the hex encoded BLAKE3-256 digest of data.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func decompress(locator string, r io.Reader) (io.Reader, func() error, error) {
	nop := func() error { return nil }

	switch {
	case strings.HasSuffix(locator, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case strings.HasSuffix(locator, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() error { zr.Close(); return nil }, nil
	case strings.HasSuffix(locator, ".lz4"):
		return lz4.NewReader(r), nop, nil
	case strings.HasSuffix(locator, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return xr, nop, nil
	default:
		return r, nop, nil
	}
}

type corpusReader struct {
	r       io.Reader
	verify  *verifyingReader
	closers []func() error
}

// Read drains the raw blob once the decompressor is done so that trailing
// bytes are covered by the checksum.
func (c *corpusReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if errors.Is(err, io.EOF) && c.verify != nil && !c.verify.done {
		if _, derr := io.Copy(io.Discard, c.verify); derr != nil {
			return n, derr
		}
	}
	return n, err
}

func (c *corpusReader) Close() error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// verifyingReader hashes everything read and replaces io.EOF with
// ErrChecksumMismatch when the digest differs.
type verifyingReader struct {
	r    io.Reader
	h    hash.Hash
	want []byte
	done bool
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.h.Write(p[:n])
	if errors.Is(err, io.EOF) && !v.done {
		v.done = true
		if got := v.h.Sum(nil); !bytes.Equal(got, v.want) {
			return n, fmt.Errorf("%w: got %x, want %x", ErrChecksumMismatch, got, v.want)
		}
	}
	return n, err
}
