// 10 Mar 2025

// Package zopen opens structure files without caring whether they are
// compressed. Wrap and WrapMaybe turn a ReadCloser into one that
// decompresses on the fly. ReadFile slurps a whole file; for large
// uncompressed files it maps the file instead of copying it through
// read calls, which is why callers get a Contents they must Close.
package zopen

import (
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
)

// FpGzip wraps a file or stream so that Read pulls from the
// decompressor when there is one, and Close shuts both down.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing
// readCloser. It should work whether the source is a file or an http
// stream.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	var s string
	if e := fc.zrdr.Close(); e != nil {
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Read makes sure we read from the compressed stream and not the
// underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap takes a source like a file pointer or http stream and wraps it
// so the correct Close and Read will be called.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	var fpz FpGzip
	var err error
	fpz.fp = fp
	fpz.zrdr, err = gzip.NewReader(fpz.fp) // No need to check error.
	return &fpz, err                       // Just pass it back
}

// ReadSeekCloser is what WrapMaybe needs: it has to be able to seek
// back to the start if the gzip header check fails.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe decides if the underlying stream is compressed and wraps
// the file pointer if necessary. You do lose something. If you pass
// in something which can seek, you get back a reader which cannot.
// This is the price one pays for reading from a compressed reader.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil // It was compressed. Return compressed reader.
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	r := &FpGzip{
		fp: fpIn, // Leave the zrdr implicitly nil
	}
	return r, err
}

// Contents is the text of one file. Bytes stays valid until Close.
// Close releases the mapping if there is one and the file behind it.
type Contents struct {
	b  []byte
	m  mmap.MMap
	fp *os.File
}

func (c *Contents) Bytes() []byte { return c.b }

func (c *Contents) Close() error {
	var s string
	if c.m != nil {
		if e := c.m.Unmap(); e != nil {
			s = e.Error()
		}
	}
	if c.fp != nil {
		if e := c.fp.Close(); e != nil {
			s = s + " " + e.Error()
		}
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Below this size a plain read is cheaper than setting up a mapping.
const mmapMin = 1 << 20

// ReadFile returns the whole contents of a file, decompressing
// gzipped input transparently. Big plain files get memory mapped
// rather than copied. If the mapping fails for some reason, we fall
// back quietly to an ordinary read.
func ReadFile(fname string) (*Contents, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	rdr, err := WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	if rdr.zrdr == nil && fi.Size() >= mmapMin {
		if m, err := mmap.Map(fp, mmap.RDONLY, 0); err == nil {
			return &Contents{b: m, m: m, fp: fp}, nil
		}
		if _, err := fp.Seek(0, io.SeekStart); err != nil {
			fp.Close()
			return nil, err
		}
	}
	b, err := io.ReadAll(rdr)
	if err != nil {
		rdr.Close()
		return nil, err
	}
	if err := rdr.Close(); err != nil {
		return nil, err
	}
	return &Contents{b: b}, nil
}
