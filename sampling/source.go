// Package sampling draws uniform and discretized-Gaussian ring elements
// from a cryptographic PRNG. The secure source is keyed from the OS
// generator; there is no fallback and no retry when it is unavailable.
package sampling

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"RLWE-Signature/polyring"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// ErrRandomSourceUnavailable reports that the secure random source could
// not be accessed or seeded. It is fatal: callers must not retry or fall
// back to a statistical PRNG.
var ErrRandomSourceUnavailable = errors.New("sampling: secure random source unavailable")

// Source draws random ring elements from an underlying PRNG. A Source is
// owned by a single goroutine; concurrent use requires external
// serialization.
type Source struct {
	prng utils.PRNG
}

// NewSource returns a Source keyed from the operating system CSPRNG.
func NewSource() (*Source, error) {
	prng, err := utils.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}
	return &Source{prng: prng}, nil
}

// NewKeyedSource returns a deterministic Source keyed by key. Intended
// for tests and reproducible sampling, not for production key material.
func NewKeyedSource(key []byte) (*Source, error) {
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}
	return &Source{prng: prng}, nil
}

func (s *Source) randUint64() (uint64, error) {
	var buf [8]byte
	if _, err := s.prng.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Uniform returns a ring element with every coefficient drawn uniformly
// from [0, q) by reducing a 64-bit draw mod q. The modulo bias is
// negligible for q far below 2^64 and accepted as a documented
// approximation otherwise.
func (s *Source) Uniform(d int, q uint64) (polyring.Poly, error) {
	p, err := polyring.New(d, q)
	if err != nil {
		return polyring.Poly{}, err
	}
	coeffs := make([]uint64, d)
	for i := range coeffs {
		r, err := s.randUint64()
		if err != nil {
			return polyring.Poly{}, err
		}
		coeffs[i] = r % q
	}
	if err := p.SetCoeffs(coeffs); err != nil {
		return polyring.Poly{}, err
	}
	return p, nil
}

// Gaussian returns a ring element whose coefficients approximate a
// discrete Gaussian with standard deviation sigma: a Box–Muller draw is
// scaled, rounded away from zero, and folded into [0, q). Exact
// rejection sampling is out of scope.
func (s *Source) Gaussian(d int, q uint64, sigma float64) (polyring.Poly, error) {
	p, err := polyring.New(d, q)
	if err != nil {
		return polyring.Poly{}, err
	}
	if sigma <= 0 {
		return polyring.Poly{}, fmt.Errorf("%w: sigma must be positive", polyring.ErrInvalidArgument)
	}
	coeffs := make([]uint64, d)
	for i := range coeffs {
		g, err := s.normFloat64()
		if err != nil {
			return polyring.Poly{}, err
		}
		z := RoundAwayFromZero(g * sigma)
		if z >= 0 {
			coeffs[i] = uint64(z) % q
		} else {
			coeffs[i] = polyring.NegMod64(uint64(-z)%q, q)
		}
	}
	if err := p.SetCoeffs(coeffs); err != nil {
		return polyring.Poly{}, err
	}
	return p, nil
}

// normFloat64 draws a standard normal via the Box–Muller transform over
// two uniform draws from the secure source.
func (s *Source) normFloat64() (float64, error) {
	r1, err := s.randUint64()
	if err != nil {
		return 0, err
	}
	r2, err := s.randUint64()
	if err != nil {
		return 0, err
	}
	// u1 in (0,1] so the logarithm stays finite; u2 in [0,1).
	u1 := (float64(r1>>11) + 0.5) * 0x1p-53
	u2 := float64(r2>>11) * 0x1p-53
	radius := math.Sqrt(-2 * math.Log(u1))
	return radius * math.Cos(2*math.Pi*u2), nil
}
