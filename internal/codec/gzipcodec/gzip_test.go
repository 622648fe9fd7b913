package gzipcodec

import (
	"bytes"
	"io"
	"testing"
)

func TestCodec_Extension(t *testing.T) {
	c := New()
	if got := c.Extension(); got != "gz" {
		t.Errorf("Extension() = %q, want %q", got, "gz")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := New()
	original := []byte(`{"ply":1,"san":"e4","uci":"e2e4","eval":35,"class":"best"}` + "\n")

	var compressed bytes.Buffer
	writer, err := c.Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reader, err := c.Reader(&compressed)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !bytes.Equal(decompressed, original) {
		t.Errorf("round-trip mismatch: got %q, want %q", decompressed, original)
	}
}

func TestCodec_Reader_InvalidData(t *testing.T) {
	c := New()
	if _, err := c.Reader(bytes.NewReader([]byte("not gzip data"))); err == nil {
		t.Error("Reader() expected error for invalid gzip data, got nil")
	}
}
