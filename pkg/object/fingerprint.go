package object

import (
	"fmt"
	"strconv"
)

// Fingerprint is the content identity used throughout the store: a 64-bit
// djb2 digest of the raw bytes. It is deterministic and fast, but not
// collision-resistant; two colliding contents alias to one blob.
type Fingerprint uint64

// String renders the fingerprint as decimal text, matching the on-disk
// blob naming scheme.
func (f Fingerprint) String() string {
	return strconv.FormatUint(uint64(f), 10)
}

// ParseFingerprint parses the decimal form produced by String.
func ParseFingerprint(s string) (Fingerprint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse fingerprint %q: %w", s, err)
	}
	return Fingerprint(v), nil
}

// FingerprintBytes computes the djb2 hash of data: seed 5381, then
// hash*33 + byte for every byte. Identical inputs always produce identical
// fingerprints; the function has no error path.
func FingerprintBytes(data []byte) Fingerprint {
	h := uint64(5381)
	for _, b := range data {
		h = h*33 + uint64(b)
	}
	return Fingerprint(h)
}
