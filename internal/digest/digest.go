package digest

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a stable hex digest of v. The value is re-encoded as
// compact JSON with sorted map keys, so two structurally identical values
// produce the same digest regardless of original key order.
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for digest: %w", err)
	}
	hash := xxh3.Hash128(data).Bytes()
	return fmt.Sprintf("%x", hash), nil
}

// FingerprintRaw digests a stored JSON document. The bytes are parsed and
// re-encoded first so on-disk indentation does not affect the result.
func FingerprintRaw(data []byte) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parse for digest: %w", err)
	}
	return Fingerprint(v)
}
