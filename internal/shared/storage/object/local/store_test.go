package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	content := []byte("signature bytes")
	key, size, _, err := store.Save(context.Background(), "guest:abc", "signature.png", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), size)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestSaveWithKeyPlacesObjectAtKey(t *testing.T) {
	store := New(t.TempDir())

	doc := "POWER OF ATTORNEY"
	n, err := store.SaveWithKey(context.Background(), "requests/req-1/poa.txt", "text/plain", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != int64(len(doc)) {
		t.Fatalf("expected %d bytes written, got %d", len(doc), n)
	}

	rc, err := store.Open(context.Background(), "requests/req-1/poa.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != doc {
		t.Fatalf("expected %q, got %q", doc, got)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if _, _, _, err := store.Save(context.Background(), "guest:abc", "../evil.png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal rejection on file name")
	}
}
