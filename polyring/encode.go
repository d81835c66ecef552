package polyring

import "encoding/binary"

// Bytes returns a canonical big-endian encoding of (dimension, modulus,
// coefficients): uint32 d, uint64 q, then d uint64 coefficients. Equal
// polynomials encode identically and any field difference changes the
// encoding. This is a hash-domain tool, not a wire format.
func (p Poly) Bytes() []byte {
	out := make([]byte, 4+8+8*p.d)
	binary.BigEndian.PutUint32(out[0:4], uint32(p.d))
	binary.BigEndian.PutUint64(out[4:12], p.q)
	for i, c := range p.coeffs {
		binary.BigEndian.PutUint64(out[12+8*i:], c)
	}
	return out
}
