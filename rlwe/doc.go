// Package rlwe implements a Ring-LWE signature scheme over
// Z_q[x]/(x^2n + 1) together with a three-party blind-signing protocol.
//
// The direct scheme encodes message bits scaled by ⌊q/2⌋ and verifies
// with a cyclic-distance threshold of ⌊q/4⌋; the blind scheme rounds
// both sides to the binary signal {0, q/2} and requires exact equality.
// Both decision rules absorb the same Gaussian noise budget, expressed
// differently because the blind signer never sees a plaintext-bit
// representative it could subtract directly.
//
// Parameters at this scale (n=8..64, q=7681, sigma=3) exercise
// correctness only; they carry no production security level, and the
// implementation makes no timing-leakage claims.
package rlwe
