package alfafreq

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket
// and object name.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// CreateLocalOrGoogleStorage opens path for writing. Paths beginning with
// gs:// are written to Google Storage with client, which must then be non-nil;
// anything else is created on the local filesystem. The object only becomes
// visible in Google Storage once Close returns without error. The returned
// writer also has an Abort method (see WriteLocalOrGoogleStorage) that
// discards what was written.
func CreateLocalOrGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("%s: no Google Storage client was initialized", path))
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		// Canceling the writer's context is the only way to stop an upload
		// without committing it.
		ctx, cancel := context.WithCancel(ctx)
		w := client.Bucket(bucketName).Object(pathName).NewWriter(ctx)
		w.ContentType = ContentTypeForPath(pathName)

		return &googleStorageWriter{Writer: w, cancel: cancel}, nil
	}

	localPath, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(localPath)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &localFileWriter{File: f}, nil
}

type abortWriteCloser interface {
	io.WriteCloser
	Abort() error
}

type googleStorageWriter struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *googleStorageWriter) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

// Abort cancels the upload. Close on a canceled writer reports the
// cancellation, which is expected here.
func (w *googleStorageWriter) Abort() error {
	w.cancel()
	w.Writer.Close()

	return nil
}

type localFileWriter struct {
	*os.File
}

// Abort closes and removes the partially written file.
func (w *localFileWriter) Abort() error {
	w.File.Close()

	if err := os.Remove(w.File.Name()); err != nil && !os.IsNotExist(err) {
		return pfx.Err(err)
	}

	return nil
}

// ContentTypeForPath guesses the MIME type of the files this module writes.
func ContentTypeForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(path, ".tsv"):
		return "text/tab-separated-values"
	}

	return "application/octet-stream"
}

// WriteLocalOrGoogleStorage creates path (see CreateLocalOrGoogleStorage),
// hands a buffered writer to render, and closes the file. If render or the
// final flush fails, nothing is left at path: local files are removed and
// Google Storage uploads are canceled before they are committed.
func WriteLocalOrGoogleStorage(ctx context.Context, path string, client *storage.Client, render func(w io.Writer) error) error {
	f, err := CreateLocalOrGoogleStorage(ctx, path, client)
	if err != nil {
		return err
	}

	return renderAndClose(f, render)
}

func renderAndClose(f io.WriteCloser, render func(w io.Writer) error) error {
	abort := func() {
		if a, ok := f.(abortWriteCloser); ok {
			if err := a.Abort(); err != nil {
				log.Println(err)
			}
			return
		}
		f.Close()
	}

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		abort()
		return err
	}

	if err := bw.Flush(); err != nil {
		abort()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
