package alfafreq

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://my-bucket/plots/maf.png")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "plots/maf.png" {
		t.Fatalf("Got bucket %q object %q", bucket, object)
	}

	if _, _, err := SplitGoogleStoragePath("gs://my-bucket"); err == nil {
		t.Fatalf("Expected an error for a path without an object")
	}
}

func TestCreateLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	w, err := CreateLocalOrGoogleStorage(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("a\tb\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != "a\tb\n" {
		t.Fatalf("Unexpected contents %q", contents)
	}
}

func TestCreateGoogleStorageWithoutClient(t *testing.T) {
	if _, err := CreateLocalOrGoogleStorage(context.Background(), "gs://bucket/x.png", nil); err == nil {
		t.Fatalf("Expected an error without a storage client")
	}
}

func TestWriteLocalRenderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")

	err := WriteLocalOrGoogleStorage(context.Background(), path, nil, func(w io.Writer) error {
		return errors.New("render failed")
	})
	if err == nil || err.Error() != "render failed" {
		t.Fatalf("Expected the render error to be returned, got %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected %s to be removed after a failed render, got %v", path, err)
	}
}

type recordingWriter struct {
	bytes.Buffer
	closed, aborted bool
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func (w *recordingWriter) Abort() error {
	w.aborted = true
	return nil
}

func TestRenderAndCloseAbortsOnError(t *testing.T) {
	w := &recordingWriter{}

	err := renderAndClose(w, func(out io.Writer) error {
		io.WriteString(out, "partial")
		return errors.New("render failed")
	})
	if err == nil {
		t.Fatalf("Expected the render error to be returned")
	}
	if !w.aborted || w.closed {
		t.Fatalf("Expected Abort without Close, got aborted=%v closed=%v", w.aborted, w.closed)
	}
	if w.Len() != 0 {
		t.Fatalf("Expected nothing to reach the destination, got %q", w.String())
	}

	w = &recordingWriter{}
	if err := renderAndClose(w, func(out io.Writer) error {
		_, err := io.WriteString(out, "done")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	if w.aborted || !w.closed || w.String() != "done" {
		t.Fatalf("Expected a flushed and closed writer, got aborted=%v closed=%v %q", w.aborted, w.closed, w.String())
	}
}

func TestExpandHome(t *testing.T) {
	path, err := ExpandHome("/tmp/out.png")
	if err != nil || path != "/tmp/out.png" {
		t.Fatalf("Expected an absolute path to be unchanged, got %q (%v)", path, err)
	}

	path, err = ExpandHome("gs://bucket/out.png")
	if err != nil || path != "gs://bucket/out.png" {
		t.Fatalf("Expected a gs:// path to be unchanged, got %q (%v)", path, err)
	}

	path, err = ExpandHome("~/out.png")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(path, "~") || filepath.Base(path) != "out.png" {
		t.Fatalf("Expected ~ to be expanded, got %q", path)
	}
}

func TestWriteLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tsv")

	err := WriteLocalOrGoogleStorage(context.Background(), path, nil, func(w io.Writer) error {
		_, err := io.WriteString(w, "x\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(path)
	if err != nil || string(contents) != "x\n" {
		t.Fatalf("Unexpected contents %q (%v)", contents, err)
	}
}
