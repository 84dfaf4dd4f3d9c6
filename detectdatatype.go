package variantkit

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "compress (.Z)"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType checks the leading bytes of a stream against a set of known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		if !bytes.Equal(head[:len(sig)], sig) {
			continue Outer
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at r and, if it carries a known compression
// signature, wraps it in the matching decompressor. Anything unrecognized is
// passed through as plain text.
func MaybeDecompress(r io.Reader) (io.Reader, DataType, error) {
	br := bufio.NewReader(r)

	// Peek returns io.EOF for short inputs; whatever was read is still valid.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, DataTypeInvalid, pfx.Err(err)
	}

	dt := DetectDataType(head)
	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		return gz, dt, err
	case DataTypeZip:
		return zipstream.NewReader(br), dt, nil
	case DataTypeBZip2:
		return bzip2.NewReader(br), dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		return reader, dt, err
	case DataTypeZ:
		// compress/lzw does not read the .Z container.
		return nil, dt, pfx.Err(fmt.Errorf("unsupported %s compression", dt))
	}

	return br, dt, nil
}

// OpenMaybeCompressed opens path and transparently decompresses it. Closing
// the result closes the underlying file.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, err
	}

	r, dt, err := MaybeDecompress(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	if dt == DataTypeZip {
		// zipstream must be advanced to the first entry before it yields data.
		zr := r.(*zipstream.Reader)
		if _, err := zr.Next(); err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
	}

	return &readCloser{Reader: r, closer: f}, nil
}

// readCloser "upgrades" readers that don't need to be closed so that closing
// them releases the file they were built on.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	return c.closer.Close()
}
