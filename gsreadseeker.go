package gapitprep

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Decorates a Google Storage object handle with io.Reader, io.Seeker and
// io.Closer. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
//
// Only rewinding is supported, which is all that compression sniffing needs.
type gsReadSeekCloser struct {
	handle *storage.ObjectHandle
	ctx    context.Context
	r      *storage.Reader
}

func (s *gsReadSeekCloser) Read(buf []byte) (int, error) {
	if s.r == nil {
		rdr, err := s.handle.NewReader(s.ctx)
		if err != nil {
			return 0, err
		}
		s.r = rdr
	}

	return s.r.Read(buf)
}

// Seek drops the current connection; the next Read opens a new one from the
// start of the object.
func (s *gsReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	if offset != 0 || whence != io.SeekStart {
		return 0, fmt.Errorf("gs:// readers can only seek to the start, not offset %d whence %d", offset, whence)
	}

	if s.r != nil {
		s.r.Close()
		s.r = nil
	}

	return 0, nil
}

func (s *gsReadSeekCloser) Close() error {
	if s.r == nil {
		return nil
	}

	err := s.r.Close()
	s.r = nil

	return err
}

// IsGoogleStoragePath reports whether path points at a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket and
// object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into a bucket and an object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenInput opens a local file, or a gs:// object when client is non-nil.
// Local paths have a leading ~/ expanded.
func OpenInput(ctx context.Context, path string, client *storage.Client) (ReadSeekCloser, error) {
	if client != nil && IsGoogleStoragePath(path) {
		bucketName, objectName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		handle := client.Bucket(bucketName).Object(objectName)

		// Make a hard call so a missing object fails here rather than on the
		// first Read
		if _, err := handle.Attrs(ctx); err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return &gsReadSeekCloser{handle: handle, ctx: ctx}, nil
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// OpenMaybeCompressed opens path via OpenInput and layers a decompressor on
// top of it if the content carries a known compression signature. Closing the
// result closes both the decompressor and the underlying input.
func OpenMaybeCompressed(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, DataType, error) {
	in, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, DataTypeInvalid, err
	}

	r, dt, err := MaybeDecompressReadCloser(in)
	if err != nil {
		in.Close()
		return nil, dt, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &stackedReadCloser{ReadCloser: r, under: in}, dt, nil
}

type stackedReadCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedReadCloser) Close() error {
	err := s.ReadCloser.Close()
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}

	return err
}
