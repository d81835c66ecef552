package rlwe

import (
	"fmt"

	"RLWE-Signature/diag"
	"RLWE-Signature/polyring"
)

// The blind protocol has three moves between a requester and the signer:
//
//	requester: (blinded, r) = ComputeBlindedMessage(secret)
//	signer:    c = BlindSign(blinded)           — never sees the secret
//	requester: sig = ComputeSignature(c, r, b)  — unblinds with public b
//
// Unblinding subtracts r*b = r*(a*s + e), cancelling the masked term
// r*a*s from s*(Y + a*r) up to the small residue e1 - r*e, so the final
// signature is s*Y plus Gaussian noise.

// ComputeBlindedMessage hashes the requester's secret to a ring element Y
// and masks it as Y + a*r with a fresh Gaussian blinding factor r. The
// blinding factor must be kept by the requester only.
func (sc *Scheme) ComputeBlindedMessage(secret []byte) (blinded, blindingFactor polyring.Poly, err error) {
	y, err := sc.orc.HashToPoly(secret, sc.dim, sc.q)
	if err != nil {
		return polyring.Poly{}, polyring.Poly{}, err
	}
	r, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return polyring.Poly{}, polyring.Poly{}, err
	}
	ar, err := sc.a.Mul(r)
	if err != nil {
		return polyring.Poly{}, polyring.Poly{}, err
	}
	blinded, err = y.Add(ar)
	if err != nil {
		return polyring.Poly{}, polyring.Poly{}, err
	}
	diag.Logf("[rlwe] blinded message: %v", blinded)
	return blinded, r, nil
}

// BlindSign signs a blinded message: s*blinded + e1 with fresh noise.
// The signer learns nothing about the underlying secret beyond the
// blinded element itself. Precondition: keys have been generated.
func (sc *Scheme) BlindSign(blinded polyring.Poly) (polyring.Poly, error) {
	e1, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return polyring.Poly{}, err
	}
	sz, err := sc.s.Mul(blinded)
	if err != nil {
		return polyring.Poly{}, err
	}
	c, err := sz.Add(e1)
	if err != nil {
		return polyring.Poly{}, err
	}
	diag.Logf("[rlwe] blind signature: %v", c)
	return c, nil
}

// ComputeSignature unblinds a blind signature: blindSig minus
// blindingFactor times the signer's second public component b. The
// requester needs no secret material.
func ComputeSignature(blindSig, blindingFactor, publicB polyring.Poly) (polyring.Poly, error) {
	rb, err := blindingFactor.Mul(publicB)
	if err != nil {
		return polyring.Poly{}, err
	}
	return blindSig.Sub(rb)
}

// VerifyBlind checks an unblinded signature over secret: both the
// signature and the expected value s*H(secret) are rounded to the binary
// signal {0, q/2} and must match exactly. The rounding absorbs the
// protocol noise, so no separate threshold applies. Precondition: keys
// have been generated.
func (sc *Scheme) VerifyBlind(secret []byte, sig polyring.Poly) (bool, error) {
	if sig.Dim() != sc.dim || sig.Modulus() != sc.q {
		return false, fmt.Errorf("%w: signature (d=%d, q=%d) vs scheme (d=%d, q=%d)",
			polyring.ErrRingMismatch, sig.Dim(), sig.Modulus(), sc.dim, sc.q)
	}
	z, err := sc.orc.HashToPoly(secret, sc.dim, sc.q)
	if err != nil {
		return false, err
	}
	expected, err := sc.s.Mul(z)
	if err != nil {
		return false, err
	}
	got := sig.Signal()
	want := expected.Signal()
	if !got.Equal(want) {
		diag.Logf("[rlwe] blind verify mismatch:\n  got  %v\n  want %v", got, want)
		return false, nil
	}
	return true, nil
}
