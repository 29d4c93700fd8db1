package remap

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Blob helpers pack a Value tree into a gzip-compressed compact-JSON blob,
// for handing mapped trees to caches or content-addressed storage.

// EncodeBlob serializes v compactly and compresses it.
func EncodeBlob(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := io.WriteString(w, Serialize(v)); err != nil {
		return nil, fmt.Errorf("remap: blob write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("remap: blob close: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeBlob decompresses and parses a blob produced by EncodeBlob.
func DecodeBlob(data []byte) (*Value, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("remap: blob open: %w", err)
	}
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("remap: blob read: %w", err)
	}
	return ParseBytes(text)
}

// BlobCID returns the content id of a blob: "sha256:<hex>".
func BlobCID(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}
