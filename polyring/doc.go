// Package polyring implements arithmetic in the negacyclic polynomial ring
// Z_q[x]/(x^d + 1) used by the RLWE signature scheme. Polynomials are
// immutable value types: every operation returns a fresh Poly and
// coefficients stay canonically reduced into [0, q).
//
// Multiplication is schoolbook negacyclic convolution with 128-bit
// intermediates, so it is correct for any 64-bit modulus; the fast NTT
// path is deliberately left to the tests as a cross-check reference.
package polyring
