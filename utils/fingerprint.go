package utils

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies the exact bytes of a written output. Two runs over the
// same inputs must produce the same fingerprints.
type Fingerprint uint64

func FingerprintOf(data []byte) Fingerprint {
	return Fingerprint(xxhash.Sum64(data))
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}
