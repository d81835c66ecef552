package polyring

import "math/bits"

// AddMod64 returns (a+b) mod q without overflowing 64-bit words.
func AddMod64(a, b, q uint64) uint64 {
	a %= q
	b %= q
	s, c := bits.Add64(a, b, 0)
	if c == 1 || s >= q {
		s -= q
	}
	return s
}

// SubMod64 returns (a-b) mod q with floor-mod semantics: the result is in
// [0, q) even when b > a.
func SubMod64(a, b, q uint64) uint64 {
	a %= q
	b %= q
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

// NegMod64 returns (-a) mod q.
func NegMod64(a, q uint64) uint64 {
	a %= q
	if a == 0 {
		return 0
	}
	return q - a
}

// MulMod64 returns (a*b) mod q using a 128-bit intermediate product.
func MulMod64(a, b, q uint64) uint64 {
	a %= q
	b %= q
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// MulAddMod64 returns (sum + a*b) mod q on 64-bit words.
func MulAddMod64(sum, a, b, q uint64) uint64 {
	return AddMod64(sum%q, MulMod64(a, b, q), q)
}
