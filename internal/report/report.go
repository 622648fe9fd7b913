// Package report writes and reads game-analysis reports as JSONL, one
// record per evaluated position, optionally compressed.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/discochess/ponder/internal/codec"
	"github.com/discochess/ponder/internal/codec/gzipcodec"
	"github.com/discochess/ponder/internal/codec/noopcodec"
	"github.com/discochess/ponder/internal/codec/zstdcodec"
)

// Record is one evaluated position of an analyzed game. Ply 0 is the
// position the game started from; it carries no move and no grade.
type Record struct {
	// Game identifies the game this record belongs to, e.g. a file name
	// or an event/round tag.
	Game string `json:"game,omitempty"`

	// Ply is the half-move number, starting at 0 for the initial position.
	Ply int `json:"ply"`

	// SAN and UCI describe the move that produced this position.
	SAN string `json:"san,omitempty"`
	UCI string `json:"uci,omitempty"`

	// FEN is the position after the move.
	FEN string `json:"fen"`

	// Eval is the engine evaluation in centipawns, White-positive.
	Eval float64 `json:"eval"`

	// Classification is the grade of the move, empty for ply 0.
	Classification string `json:"class,omitempty"`
}

// CodecForName maps a user-facing compression name to a codec.
// Recognized names: "zstd"/"zst", "gzip"/"gz" and "none"/"".
func CodecForName(name string) (codec.Codec, error) {
	switch name {
	case "zstd", "zst":
		return zstdcodec.New(), nil
	case "gzip", "gz":
		return gzipcodec.New(), nil
	case "none", "":
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// Writer streams records as JSONL through a compressing codec.
type Writer struct {
	wc  io.WriteCloser
	enc *json.Encoder
}

// NewWriter wraps w with the codec and returns a record writer. Close
// flushes the codec; it does not close w.
func NewWriter(w io.Writer, c codec.Codec) (*Writer, error) {
	wc, err := c.Writer(w)
	if err != nil {
		return nil, fmt.Errorf("wrapping writer: %w", err)
	}
	return &Writer{wc: wc, enc: json.NewEncoder(wc)}, nil
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

// Close flushes buffered compressed data.
func (w *Writer) Close() error {
	return w.wc.Close()
}

// ReadAll decompresses r with the codec and decodes every record.
func ReadAll(r io.Reader, c codec.Codec) ([]Record, error) {
	rc, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("wrapping reader: %w", err)
	}
	defer rc.Close()

	var records []Record
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}
