package core

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// IDSource produces unique requirement identifiers. The default source is
// a cryptographically random UUID v4; tests inject deterministic ones.
type IDSource func() string

// NewID returns a random UUID v4, falling back to a pseudo-random but
// syntactically valid v4 string if the secure source fails. The IDs are
// not security tokens, so the fallback is acceptable.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return pseudoUUID()
	}
	return id.String()
}

func pseudoUUID() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
