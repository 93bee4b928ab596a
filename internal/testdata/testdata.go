// Package testdata provides deterministic pseudorandom data for tests and fuzz corpora.
package testdata

import (
	"crypto/sha3"
	"encoding/binary"
)

// A DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	xof *sha3.SHAKE
}

// New returns a DRBG seeded with the given domain string.
func New(domain string) *DRBG {
	xof := sha3.NewSHAKE128()
	_, _ = xof.Write([]byte(domain))
	return &DRBG{xof: xof}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.xof.Read(b)
	return b
}

// Intn returns the next output as an integer in [0, n).
func (d *DRBG) Intn(n int) int {
	var b [8]byte
	_, _ = d.xof.Read(b[:])
	return int(binary.LittleEndian.Uint64(b[:]) % uint64(n)) //nolint:gosec // n > 0
}
