package polyring

// Add returns p + o with coefficient-wise addition mod q.
func (p Poly) Add(o Poly) (Poly, error) {
	if err := p.sameRing(o); err != nil {
		return Poly{}, err
	}
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i := range r.coeffs {
		r.coeffs[i] = AddMod64(p.coeffs[i], o.coeffs[i], p.q)
	}
	return r, nil
}

// Sub returns p - o, re-normalized into [0, q).
func (p Poly) Sub(o Poly) (Poly, error) {
	if err := p.sameRing(o); err != nil {
		return Poly{}, err
	}
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i := range r.coeffs {
		r.coeffs[i] = SubMod64(p.coeffs[i], o.coeffs[i], p.q)
	}
	return r, nil
}

// Neg returns -p mod q.
func (p Poly) Neg() Poly {
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i := range r.coeffs {
		r.coeffs[i] = NegMod64(p.coeffs[i], p.q)
	}
	return r
}

// Mul returns p * o reduced modulo x^d + 1 and q. The product is the
// length-2d schoolbook convolution folded by x^d = -1.
func (p Poly) Mul(o Poly) (Poly, error) {
	if err := p.sameRing(o); err != nil {
		return Poly{}, err
	}
	temp := make([]uint64, 2*p.d)
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range o.coeffs {
			temp[i+j] = MulAddMod64(temp[i+j], a, b, p.q)
		}
	}
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i := 0; i < p.d; i++ {
		r.coeffs[i] = SubMod64(temp[i], temp[i+p.d], p.q)
	}
	return r, nil
}

// ScalarMul returns k*p with coefficient-wise multiplication mod q.
func (p Poly) ScalarMul(k uint64) Poly {
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i := range r.coeffs {
		r.coeffs[i] = MulMod64(p.coeffs[i], k, p.q)
	}
	return r
}

// Signal rounds every coefficient to the nearer of {0, q/2} under cyclic
// distance, decoding a noisy ring element back into a binary signal.
// Ties go to 0.
func (p Poly) Signal() Poly {
	half := p.q / 2
	r := Poly{d: p.d, q: p.q, coeffs: make([]uint64, p.d)}
	for i, c := range p.coeffs {
		d0 := cyclicDist(c, 0, p.q)
		dh := cyclicDist(c, half, p.q)
		if d0 <= dh {
			r.coeffs[i] = 0
		} else {
			r.coeffs[i] = half
		}
	}
	return r
}

// cyclicDist is min(|a-b|, q-|a-b|), the distance on Z/qZ seen as a cycle.
func cyclicDist(a, b, q uint64) uint64 {
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
