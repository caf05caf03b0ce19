package gapitprep

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

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
	DataTypeZlib
)

func (dt DataType) String() string {
	switch dt {
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
	case DataTypeZlib:
		return "zlib"
	}

	return "invalid"
}

// ErrUnsupportedCompression is returned for recognized formats that cannot be
// decompressed.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// zlib headers are 0x78 followed by one of four compression-level flags
var byteCodeSigs = map[DataType][][]byte{
	DataTypeGzip:  {{0x1f, 0x8b, 0x08}},
	DataTypeZip:   {{0x50, 0x4b, 0x03, 0x04}},
	DataTypeXZ:    {{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	DataTypeZ:     {{0x1f, 0x9d}},
	DataTypeBZip2: {{0x42, 0x5a, 0x68}},
	DataTypeZlib:  {{0x78, 0x01}, {0x78, 0x5e}, {0x78, 0x9c}, {0x78, 0xda}},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
//
// Streams shorter than the longest signature are still matched against the
// signatures they are long enough to hold. An empty stream is uncompressed.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
	for dt, sigs := range byteCodeSigs {
		for _, sig := range sigs {
			if bytes.HasPrefix(buff, sig) {
				return dt, nil
			}
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser sniffs the first bytes of rs, rewinds it, and
// returns a reader that yields the decompressed content. Closing the returned
// reader releases the decompressor only; rs is still owned by the caller.
func MaybeDecompressReadCloser(rs io.ReadSeeker) (io.ReadCloser, DataType, error) {
	dt, err := DetectDataType(rs)
	if err != nil {
		return nil, DataTypeInvalid, err
	}

	// Reset the original reader before any decompressor consumes its header
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, DataTypeInvalid, err
	}

	switch dt {
	case DataTypeGzip:
		r, err := gzip.NewReader(rs)
		return r, dt, err
	case DataTypeZip:
		zr := zipstream.NewReader(rs)
		// Only the first member of an archive is read
		if _, err := zr.Next(); err != nil {
			return nil, dt, fmt.Errorf("zip archive has no readable member: %w", err)
		}
		return &readCloserFaker{zr}, dt, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(rs)}, dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(rs, 0)
		if err != nil {
			return nil, dt, err
		}
		return &readCloserFaker{reader}, dt, nil
	case DataTypeZlib:
		r, err := zlib.NewReader(rs)
		return r, dt, err
	case DataTypeZ:
		// compress/lzw does not read the .Z header
		return nil, dt, fmt.Errorf("%w: %s", ErrUnsupportedCompression, dt)
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &readCloserFaker{rs}, dt, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
