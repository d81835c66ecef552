// Package oracle maps byte strings onto ring elements. The hash primitive
// is an external boundary: any deterministic, collision-resistant digest
// of at least 32 bytes satisfies the Hasher contract. The default is
// SHA3-256.
package oracle

import (
	"encoding/binary"

	"RLWE-Signature/polyring"

	"golang.org/x/crypto/sha3"
)

// Hasher is the opaque hash boundary consumed by the oracle.
type Hasher interface {
	Sum(data []byte) []byte
}

// SHA3Hasher implements Hasher with SHA3-256.
type SHA3Hasher struct{}

// Sum returns the 32-byte SHA3-256 digest of data.
func (SHA3Hasher) Sum(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

// Oracle expands messages into ring elements via counter-mode hashing.
type Oracle struct {
	h Hasher
}

// New returns an Oracle over h. A nil Hasher selects SHA3-256.
func New(h Hasher) Oracle {
	if h == nil {
		h = SHA3Hasher{}
	}
	return Oracle{h: h}
}

// HashToPoly deterministically maps msg to a ring element with
// coefficients in {0, q/2}. Blocks are formed as counter ‖ msg with a
// 32-bit little-endian counter starting at 0; digest bits are consumed
// MSB-to-LSB, one per coefficient, hashing the next block when a digest
// is exhausted before d coefficients are filled.
func (o Oracle) HashToPoly(msg []byte, d int, q uint64) (polyring.Poly, error) {
	half := q / 2
	coeffs := make([]uint64, 0, d)
	block := make([]byte, 4+len(msg))
	copy(block[4:], msg)
	for counter := uint32(0); len(coeffs) < d; counter++ {
		binary.LittleEndian.PutUint32(block[:4], counter)
		digest := o.h.Sum(block)
		for _, b := range digest {
			for bit := 7; bit >= 0 && len(coeffs) < d; bit-- {
				if (b>>uint(bit))&1 == 1 {
					coeffs = append(coeffs, half)
				} else {
					coeffs = append(coeffs, 0)
				}
			}
			if len(coeffs) == d {
				break
			}
		}
	}
	return polyring.NewFromCoeffs(coeffs, q)
}

// SumPoly returns the digest of a polynomial's canonical encoding.
func (o Oracle) SumPoly(p polyring.Poly) []byte {
	return o.h.Sum(p.Bytes())
}

// MessageToPoly maps raw message bits onto 0/1 coefficients, MSB-first
// per byte, zero-padded or truncated to dimension d. It is the message
// representative of the direct signature scheme, scaled by ⌊q/2⌋ at the
// protocol layer.
func MessageToPoly(msg []byte, d int, q uint64) (polyring.Poly, error) {
	coeffs := make([]uint64, d)
	idx := 0
	for _, b := range msg {
		for bit := 7; bit >= 0 && idx < d; bit-- {
			coeffs[idx] = uint64((b >> uint(bit)) & 1)
			idx++
		}
		if idx == d {
			break
		}
	}
	return polyring.NewFromCoeffs(coeffs, q)
}
