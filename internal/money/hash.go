package money

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentHash computes SHA-256 over a normalized JSON projection of v: keys
// sorted lexicographically, no insignificant whitespace, numeric literals
// preserved verbatim (via json.Number) rather than re-encoded through a
// lossy float64 round trip. Two values that marshal to the same normalized
// bytes MUST represent identical computations — this is the single
// normalization routine used for both cache fingerprints and
// ReportVersion.content_hash / integrity_hash.
func ContentHash(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("money: marshal for content hash: %w", err)
	}

	normalized, err := Canonicalize(raw)
	if err != nil {
		return "", fmt.Errorf("money: canonicalize for content hash: %w", err)
	}

	sum := sha256.Sum256(normalized)
	return hex.EncodeToString(sum[:]), nil
}

// Canonicalize re-encodes a JSON document with map keys sorted and no
// insignificant whitespace. encoding/json already sorts map[string]any keys
// on Marshal; decoding with UseNumber preserves numeric text instead of
// collapsing it through float64.
func Canonicalize(raw []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encode: %w", err)
	}
	return out, nil
}
