package polyring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRingMismatch reports operands living in different rings
	// (dimension or modulus differ). It signals a caller bug.
	ErrRingMismatch = errors.New("polyring: operands from different rings")

	// ErrInvalidArgument reports malformed construction input such as a
	// non-power-of-two dimension or a wrong-length coefficient vector.
	ErrInvalidArgument = errors.New("polyring: invalid argument")
)

// Poly is an element of Z_q[x]/(x^d + 1). The zero Poly (dimension 0) is
// not a usable ring element; construct through New or NewFromCoeffs.
type Poly struct {
	d      int
	q      uint64
	coeffs []uint64
}

// New returns the zero polynomial of the ring with dimension d and
// modulus q. d must be a power of two so that x^d+1 is cyclotomic.
func New(d int, q uint64) (Poly, error) {
	if d <= 0 || d&(d-1) != 0 {
		return Poly{}, fmt.Errorf("%w: dimension %d is not a power of two", ErrInvalidArgument, d)
	}
	if q == 0 {
		return Poly{}, fmt.Errorf("%w: modulus must be nonzero", ErrInvalidArgument)
	}
	return Poly{d: d, q: q, coeffs: make([]uint64, d)}, nil
}

// NewFromCoeffs builds a polynomial from an explicit coefficient vector,
// reducing every entry mod q. The dimension is len(coeffs) and must be a
// power of two.
func NewFromCoeffs(coeffs []uint64, q uint64) (Poly, error) {
	p, err := New(len(coeffs), q)
	if err != nil {
		return Poly{}, err
	}
	for i, c := range coeffs {
		p.coeffs[i] = c % q
	}
	return p, nil
}

// Dim returns the ring dimension d.
func (p Poly) Dim() int { return p.d }

// Modulus returns the coefficient modulus q.
func (p Poly) Modulus() uint64 { return p.q }

// At returns the i-th coefficient.
func (p Poly) At(i int) uint64 { return p.coeffs[i] }

// Coeffs returns a copy of the coefficient vector, preserving value
// semantics for callers that iterate or persist coefficients.
func (p Poly) Coeffs() []uint64 {
	out := make([]uint64, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// SetCoeffs reinitializes the polynomial with newCoeffs reduced mod q.
// The length must equal the ring dimension. Not safe for concurrent use
// with readers of the same instance.
func (p *Poly) SetCoeffs(newCoeffs []uint64) error {
	if len(newCoeffs) != p.d {
		return fmt.Errorf("%w: got %d coefficients, ring dimension is %d", ErrInvalidArgument, len(newCoeffs), p.d)
	}
	cs := make([]uint64, p.d)
	for i, c := range newCoeffs {
		cs[i] = c % p.q
	}
	p.coeffs = cs
	return nil
}

// Equal reports whether both polynomials live in the same ring and have
// identical coefficients.
func (p Poly) Equal(o Poly) bool {
	if p.d != o.d || p.q != o.q {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i] != o.coeffs[i] {
			return false
		}
	}
	return true
}

// String renders the coefficient vector for diagnostics.
func (p Poly) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p.coeffs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteByte(']')
	return sb.String()
}

func (p Poly) sameRing(o Poly) error {
	if p.d != o.d || p.q != o.q {
		return fmt.Errorf("%w: (d=%d, q=%d) vs (d=%d, q=%d)", ErrRingMismatch, p.d, p.q, o.d, o.q)
	}
	return nil
}
