package rlwe

import (
	"fmt"

	"RLWE-Signature/diag"
	"RLWE-Signature/oracle"
	"RLWE-Signature/polyring"
	"RLWE-Signature/sampling"
)

// GaussianStdDev is the default noise parameter for key and signature
// sampling. It is an empirically chosen constant for test-scale moduli,
// not a hard invariant.
const GaussianStdDev = 3.0

// Opts carries tunable scheme constants.
type Opts struct {
	// Sigma is the standard deviation of all Gaussian sampling; zero
	// selects GaussianStdDev.
	Sigma float64
}

// Signature is a direct-scheme signature: the pair (u, v) over the
// scheme's ring.
type Signature struct {
	U polyring.Poly
	V polyring.Poly
}

// Scheme holds the key material and parameters of one signer. A Scheme
// is owned by a single logical actor: GenerateKeys must not race with
// Sign or Verify. The secret key never leaves the Scheme.
//
// The working ring dimension is 2n for security parameter n, stored
// explicitly to avoid the n-vs-2n ambiguity.
type Scheme struct {
	n     int
	dim   int
	q     uint64
	sigma float64

	src *sampling.Source
	orc oracle.Oracle

	a polyring.Poly // public: uniform
	b polyring.Poly // public: a*s + e
	s polyring.Poly // secret
}

// New constructs a Scheme for security parameter n and modulus q, drawing
// randomness from src. The working ring Z_q[x]/(x^2n + 1) must be a
// genuine cyclotomic ring, so n must be a power of two.
func New(n int, q uint64, src *sampling.Source, opts Opts) (*Scheme, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil sampling source", polyring.ErrInvalidArgument)
	}
	dim := 2 * n
	if _, err := polyring.New(dim, q); err != nil {
		return nil, err
	}
	sigma := opts.Sigma
	if sigma == 0 {
		sigma = GaussianStdDev
	}
	if sigma < 0 {
		return nil, fmt.Errorf("%w: negative sigma", polyring.ErrInvalidArgument)
	}
	diag.Logf("[rlwe] new scheme n=%d dim=%d q=%d sigma=%g", n, dim, q, sigma)
	return &Scheme{n: n, dim: dim, q: q, sigma: sigma, src: src, orc: oracle.New(nil)}, nil
}

// Dim returns the working ring dimension (2n).
func (sc *Scheme) Dim() int { return sc.dim }

// Modulus returns the coefficient modulus q.
func (sc *Scheme) Modulus() uint64 { return sc.q }

// GenerateKeys samples a fresh key pair, overwriting any prior key
// material: a uniform, s and e Gaussian, b = a*s + e.
func (sc *Scheme) GenerateKeys() error {
	diag.Logf("[rlwe] generating keys")
	a, err := sc.src.Uniform(sc.dim, sc.q)
	if err != nil {
		return err
	}
	s, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return err
	}
	e, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return err
	}
	as, err := a.Mul(s)
	if err != nil {
		return err
	}
	b, err := as.Add(e)
	if err != nil {
		return err
	}
	sc.a, sc.b, sc.s = a, b, s
	diag.Logf("[rlwe] a: %v", a)
	diag.Logf("[rlwe] b: %v", b)
	return nil
}

// PublicKey returns the public pair (a, b). Valid only after
// GenerateKeys or SetKeys.
func (sc *Scheme) PublicKey() (a, b polyring.Poly) {
	return sc.a, sc.b
}

// ExportKeys returns the full key triple (a, b, s) for persistence by
// the signer. It is the only way secret material leaves the Scheme;
// verification and signing APIs never return s.
func (sc *Scheme) ExportKeys() (a, b, s polyring.Poly) {
	return sc.a, sc.b, sc.s
}

// SetKeys restores persisted key material. All three polynomials must
// live in the scheme's ring.
func (sc *Scheme) SetKeys(a, b, s polyring.Poly) error {
	for _, p := range []polyring.Poly{a, b, s} {
		if p.Dim() != sc.dim || p.Modulus() != sc.q {
			return fmt.Errorf("%w: key (d=%d, q=%d) vs scheme (d=%d, q=%d)",
				polyring.ErrRingMismatch, p.Dim(), p.Modulus(), sc.dim, sc.q)
		}
	}
	sc.a, sc.b, sc.s = a, b, s
	return nil
}

// Sign produces the signature (u, v) for message bytes. Fresh noise is
// drawn per call; signatures of the same message differ. Precondition:
// keys have been generated.
func (sc *Scheme) Sign(message []byte) (Signature, error) {
	z, err := oracle.MessageToPoly(message, sc.dim, sc.q)
	if err != nil {
		return Signature{}, err
	}
	r, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return Signature{}, err
	}
	e1, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return Signature{}, err
	}
	e2, err := sc.src.Gaussian(sc.dim, sc.q, sc.sigma)
	if err != nil {
		return Signature{}, err
	}
	ar, err := sc.a.Mul(r)
	if err != nil {
		return Signature{}, err
	}
	u, err := ar.Add(e1)
	if err != nil {
		return Signature{}, err
	}
	br, err := sc.b.Mul(r)
	if err != nil {
		return Signature{}, err
	}
	v, err := br.Add(e2)
	if err != nil {
		return Signature{}, err
	}
	v, err = v.Add(z.ScalarMul(sc.q / 2))
	if err != nil {
		return Signature{}, err
	}
	diag.Logf("[rlwe] sign u: %v", u)
	diag.Logf("[rlwe] sign v: %v", v)
	return Signature{U: u, V: v}, nil
}

// Verify checks (u, v) against message. It recomputes
// result = v - u*s and accepts iff every coefficient of result is within
// cyclic distance ⌊q/4⌋ of the ⌊q/2⌋-scaled message bit. A false return
// is a normal outcome; errors indicate ring mismatches, i.e. caller
// bugs. Precondition: keys have been generated.
func (sc *Scheme) Verify(message []byte, sig Signature) (bool, error) {
	z, err := oracle.MessageToPoly(message, sc.dim, sc.q)
	if err != nil {
		return false, err
	}
	us, err := sig.U.Mul(sc.s)
	if err != nil {
		return false, err
	}
	result, err := sig.V.Sub(us)
	if err != nil {
		return false, err
	}
	expected := z.ScalarMul(sc.q / 2)
	threshold := sc.q / 4
	for i := 0; i < sc.dim; i++ {
		if CyclicDistance(result.At(i), expected.At(i), sc.q) > threshold {
			diag.Logf("[rlwe] verify: coefficient %d out of bound (result=%d expected=%d)",
				i, result.At(i), expected.At(i))
			return false, nil
		}
	}
	return true, nil
}

// CyclicDistance is min(|a-b|, q-|a-b|), the metric on Z/qZ used by the
// verification threshold.
func CyclicDistance(a, b, q uint64) uint64 {
	var diff uint64
	if a >= b {
		diff = a - b
	} else {
		diff = b - a
	}
	if q-diff < diff {
		return q - diff
	}
	return diff
}
