// Package random sources simulation seeds.
package random

import (
	"crypto/rand"
	"encoding/binary"
)

// Seed draws a fresh seed from the system entropy source. Read always
// succeeds, so no error handling is necessary.
func Seed() uint64 {
	var b [8]byte
	rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
